package schema

import (
	"context"
	"fmt"
)

// ResolveEnv contains important context passed to resolver implementations.
type ResolveEnv struct {
	Context   context.Context
	Object    interface{}
	Arguments map[string]interface{}
}

// Argument returns the named argument, or nil if it wasn't given.
func (env *ResolveEnv) Argument(name string) interface{} {
	return env.Arguments[name]
}

// Resolver produces the value of a field.
type Resolver func(env *ResolveEnv) (interface{}, error)

// FieldCoordinates identify a field by its parent type name and its own name.
type FieldCoordinates struct {
	Type  string
	Field string
}

func Coordinates(parentType, field string) FieldCoordinates {
	return FieldCoordinates{
		Type:  parentType,
		Field: field,
	}
}

func (c FieldCoordinates) String() string {
	return c.Type + "." + c.Field
}

// CodeRegistry maps fields to the resolvers that produce their values. Each field may only be
// registered once.
type CodeRegistry struct {
	resolvers map[FieldCoordinates]Resolver
	order     []FieldCoordinates
}

func NewCodeRegistry() *CodeRegistry {
	return &CodeRegistry{
		resolvers: map[FieldCoordinates]Resolver{},
	}
}

// Register binds a resolver to a field.
func (r *CodeRegistry) Register(coords FieldCoordinates, resolver Resolver) error {
	if resolver == nil {
		return fmt.Errorf("nil resolver for %v", coords)
	} else if _, ok := r.resolvers[coords]; ok {
		return fmt.Errorf("a resolver for %v is already registered", coords)
	}
	r.resolvers[coords] = resolver
	r.order = append(r.order, coords)
	return nil
}

// Replace rebinds a field that is already registered.
func (r *CodeRegistry) Replace(coords FieldCoordinates, resolver Resolver) error {
	if resolver == nil {
		return fmt.Errorf("nil resolver for %v", coords)
	} else if _, ok := r.resolvers[coords]; !ok {
		return fmt.Errorf("no resolver for %v is registered", coords)
	}
	r.resolvers[coords] = resolver
	return nil
}

// Resolver returns the resolver for a field or nil.
func (r *CodeRegistry) Resolver(coords FieldCoordinates) Resolver {
	return r.resolvers[coords]
}

// Coordinates returns all registered fields in registration order.
func (r *CodeRegistry) Coordinates() []FieldCoordinates {
	return append([]FieldCoordinates(nil), r.order...)
}

// Fork returns an empty registry whose registrations can later be merged back into r.
func (r *CodeRegistry) Fork() *CodeRegistry {
	return NewCodeRegistry()
}

// Merge registers everything in other with r, skipping any fields of the types named in
// discard. Fields already registered with r are an error.
func (r *CodeRegistry) Merge(other *CodeRegistry, discard ...string) error {
	skip := map[string]struct{}{}
	for _, name := range discard {
		skip[name] = struct{}{}
	}
	for _, coords := range other.order {
		if _, ok := skip[coords.Type]; ok {
			continue
		}
		if err := r.Register(coords, other.resolvers[coords]); err != nil {
			return err
		}
	}
	return nil
}
