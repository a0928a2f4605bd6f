package schemafu

import (
	"github.com/ccbrown/schema-fu/graphql/schema"
)

// Schema is the result of a build: the root fields and directives ready to be attached to a schema
// document, every named type they reference, and the resolvers of every field.
type Schema struct {
	// The root types. Each is nil if it would have no fields.
	Query        *schema.ObjectType
	Mutation     *schema.ObjectType
	Subscription *schema.ObjectType

	Queries       []*schema.FieldDefinition
	Mutations     []*schema.FieldDefinition
	Subscriptions []*schema.FieldDefinition
	Directives    []*schema.DirectiveDefinition

	// All named types other than the roots, in the order they were first mapped.
	Types []schema.NamedType

	CodeRegistry *schema.CodeRegistry
}

// Type returns the named type with the given name, including the roots and builtins.
func (s *Schema) Type(name string) schema.NamedType {
	for _, root := range []*schema.ObjectType{s.Query, s.Mutation, s.Subscription} {
		if root != nil && root.Name == name {
			return root
		}
	}
	for _, t := range s.Types {
		if t.TypeName() == name {
			return t
		}
	}
	if t := schema.BuiltinType(name); t != nil {
		return t
	}
	return nil
}

// Resolver returns the resolver registered for a field or nil.
func (s *Schema) Resolver(parentType, field string) schema.Resolver {
	return s.CodeRegistry.Resolver(schema.Coordinates(parentType, field))
}

func (s *Schema) roots() []interface{} {
	var ret []interface{}
	for _, root := range []*schema.ObjectType{s.Query, s.Mutation, s.Subscription} {
		if root != nil {
			ret = append(ret, root)
		}
	}
	for _, d := range s.Directives {
		ret = append(ret, d)
	}
	return ret
}

func (s *Schema) validate() error {
	nodes := s.roots()
	for _, t := range s.Types {
		nodes = append(nodes, t)
	}
	return schema.Validate(nodes...)
}
