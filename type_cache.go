package schemafu

import (
	"reflect"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

type typeCacheEntry struct {
	native     reflect.Type
	typ        schema.NamedType
	inProgress bool
}

// TypeCache deduplicates named types by name. While a type is being built its entry is marked as
// in progress, and anything referring to it receives a *schema.TypeReference that is replaced by
// ResolveTypeReferences once the build completes.
type TypeCache struct {
	entries map[string]*typeCacheEntry
	order   []string
}

func NewTypeCache() *TypeCache {
	return &TypeCache{
		entries: map[string]*typeCacheEntry{},
	}
}

// Register marks the named type as in progress.
func (c *TypeCache) Register(name string, native reflect.Type) {
	c.entries[name] = &typeCacheEntry{
		native:     native,
		inProgress: true,
	}
}

// Contains returns true if the name is known, either completed or in progress.
func (c *TypeCache) Contains(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// InProgress returns true if the named type is currently being built.
func (c *TypeCache) InProgress(name string) bool {
	e, ok := c.entries[name]
	return ok && e.inProgress
}

// Native returns the Go type the name was registered or completed with.
func (c *TypeCache) Native(name string) reflect.Type {
	if e, ok := c.entries[name]; ok {
		return e.native
	}
	return nil
}

// Complete records a finished type and returns the canonical instance for its name. If the name
// was already completed, the previously completed instance is returned. Built-in scalars are never
// cached.
func (c *TypeCache) Complete(t schema.NamedType, native reflect.Type) schema.NamedType {
	if _, ok := t.(*schema.TypeReference); ok || schema.IsBuiltin(t) {
		return t
	}
	name := t.TypeName()
	if e, ok := c.entries[name]; ok {
		if !e.inProgress {
			return e.typ
		}
		e.typ = t
		e.inProgress = false
		if e.native == nil {
			e.native = native
		}
	} else {
		c.entries[name] = &typeCacheEntry{
			native: native,
			typ:    t,
		}
	}
	c.order = append(c.order, name)
	return t
}

// Resolve returns the completed type with the given name. Built-in scalars always resolve.
func (c *TypeCache) Resolve(name string) (schema.NamedType, bool) {
	if builtin := schema.BuiltinType(name); builtin != nil {
		return builtin, true
	}
	if e, ok := c.entries[name]; ok && !e.inProgress {
		return e.typ, true
	}
	return nil, false
}

// Types returns all completed types in the order they were completed.
func (c *TypeCache) Types() []schema.NamedType {
	ret := make([]schema.NamedType, 0, len(c.order))
	for _, name := range c.order {
		ret = append(ret, c.entries[name].typ)
	}
	return ret
}

// ResolveTypeReferences replaces references within the cached types and the given roots with the
// completed types they refer to.
func (c *TypeCache) ResolveTypeReferences(roots ...interface{}) error {
	nodes := make([]interface{}, 0, len(roots)+len(c.order))
	nodes = append(nodes, roots...)
	for _, t := range c.Types() {
		nodes = append(nodes, t)
	}
	return schema.ReplaceTypeReferences(c.Resolve, nodes...)
}

// replace swaps the entry for a name, returning a function that restores the previous one.
func (c *TypeCache) replace(name string, native reflect.Type) (restore func()) {
	prev := c.entries[name]
	c.Register(name, native)
	return func() {
		c.entries[name] = prev
	}
}
