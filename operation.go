package schemafu

import (
	"reflect"
	"sort"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// Site is a single Go declaration that contributes metadata to a schema element.
type Site struct {
	// A human readable name such as "Book.Title", used for diagnostics.
	Name string

	Tag reflect.StructTag

	// Annotation values attached to the declaration. The default directive builder turns each of
	// these into a directive.
	Annotations []interface{}
}

// TypedElement lists the declarations an element was derived from. For example, a field backed by
// a method declared on multiple interfaces has one site per interface.
type TypedElement struct {
	Sites []Site
}

func NewTypedElement(sites ...Site) *TypedElement {
	return &TypedElement{
		Sites: sites,
	}
}

// Name returns the name of the first site or an empty string.
func (e *TypedElement) Name() string {
	if e == nil || len(e.Sites) == 0 {
		return ""
	}
	return e.Sites[0].Name
}

// DefaultValue is the default of an argument or input field. If Set is false there is no default.
// An explicit null default is represented by a Value of schema.Null.
type DefaultValue struct {
	Set   bool
	Value interface{}
}

// Default returns a default value. A nil value is interpreted as an explicit null.
func Default(v interface{}) DefaultValue {
	if v == nil {
		v = schema.Null
	}
	return DefaultValue{
		Set:   true,
		Value: v,
	}
}

func (v DefaultValue) schemaValue() interface{} {
	if !v.Set {
		return nil
	}
	return v.Value
}

// Resolver is one Go implementation of an operation. An operation may be implemented by multiple
// resolvers, distinguished by the arguments they require.
type Resolver struct {
	// The names of the arguments this resolver requires.
	Arguments []string

	// The static type of the values returned by Resolve. If nil, the operation's type is assumed.
	ReturnType reflect.Type

	// Invoked with the arguments already converted to Go values.
	Resolve schema.Resolver
}

func argumentFingerprint(names []string) string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	fp := ""
	for _, name := range sorted {
		fp += name + ","
	}
	return fp
}

// Operation is a query, mutation, subscription, or a field of an object type.
type Operation struct {
	Name              string
	Description       string
	DeprecationReason string

	// The Go type returned by the operation.
	Type reflect.Type

	Element   *TypedElement
	Arguments []*OperationArgument
	Resolvers []*Resolver

	// If true, the operation returns an internal id which is exposed as a Relay global id of the
	// parent type.
	RelayID bool
}

// Argument returns the argument with the given name or nil.
func (op *Operation) Argument(name string) *OperationArgument {
	for _, arg := range op.Arguments {
		if arg.Name == name {
			return arg
		}
	}
	return nil
}

// Resolver returns the resolver requiring exactly the given arguments or nil.
func (op *Operation) Resolver(argumentNames ...string) *Resolver {
	fp := argumentFingerprint(argumentNames)
	for _, r := range op.Resolvers {
		if argumentFingerprint(r.Arguments) == fp {
			return r
		}
	}
	return nil
}

// applicableResolver selects the resolver to invoke for the given arguments. Single-resolver
// operations always use their resolver. Otherwise an exact match on the non-null arguments wins,
// falling back to the resolver requiring the most arguments that were all provided.
func (op *Operation) applicableResolver(args map[string]interface{}) *Resolver {
	if len(op.Resolvers) == 1 {
		return op.Resolvers[0]
	}
	var provided []string
	for name, v := range args {
		if v != nil {
			provided = append(provided, name)
		}
	}
	if r := op.Resolver(provided...); r != nil {
		return r
	}
	var best *Resolver
	for _, r := range op.Resolvers {
		satisfied := true
		for _, name := range r.Arguments {
			if args[name] == nil {
				satisfied = false
				break
			}
		}
		if satisfied && (best == nil || len(r.Arguments) > len(best.Arguments)) {
			best = r
		}
	}
	return best
}

// OperationArgument is an argument of an operation.
type OperationArgument struct {
	Name        string
	Description string
	Type        reflect.Type
	Element     *TypedElement

	DefaultValue DefaultValue

	// Internal arguments are supplied to resolvers by the application and are not part of the
	// schema.
	Internal bool

	// If true, the argument is a Relay global id which is decoded into Type before being given to
	// resolvers.
	RelayID bool
}

// Mappable returns true if the argument is exposed by the schema.
func (arg *OperationArgument) Mappable() bool {
	return !arg.Internal
}

// InputField is a field of an input object.
type InputField struct {
	Name        string
	Description string
	Type        reflect.Type
	Element     *TypedElement

	DefaultValue DefaultValue
	RelayID      bool

	// The index of the Go struct field backing the input field, if any.
	Index []int
}

// Directive describes a directive to be defined by the schema and possibly applied to an element.
type Directive struct {
	Name        string
	Description string
	Locations   []schema.DirectiveLocation
	Arguments   []*DirectiveArgument
}

// DirectiveArgument is an argument of a directive. Unlike operation arguments, directive arguments
// always carry the value they're applied with.
type DirectiveArgument struct {
	Name        string
	Description string
	Type        reflect.Type
	Element     *TypedElement

	Value        interface{}
	DefaultValue DefaultValue
}
