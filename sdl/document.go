// Package sdl exports built schemas as GraphQL schema definition language documents.
package sdl

import (
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"

	schemafu "github.com/ccbrown/schema-fu"
	"github.com/ccbrown/schema-fu/graphql/schema"
)

// Directives every GraphQL implementation defines. They are never written to documents.
var preludeDirectives = map[string]struct{}{
	"skip":        {},
	"include":     {},
	"deprecated":  {},
	"specifiedBy": {},
	"oneOf":       {},
	"defer":       {},
}

// Document converts a built schema to a schema document. Built-in scalars and directives are
// omitted. Every directive applied anywhere in the schema is defined by the document, along with
// the schema's additional directives.
func Document(s *schemafu.Schema) (*ast.SchemaDocument, error) {
	doc := &ast.SchemaDocument{}

	if def := schemaDefinition(s); def != nil {
		doc.Schema = append(doc.Schema, def)
	}

	for _, t := range namedTypes(s) {
		def, err := definition(t)
		if err != nil {
			return nil, errors.Wrapf(err, "error converting %v", t.TypeName())
		}
		doc.Definitions = append(doc.Definitions, def)
	}

	for _, d := range directiveDefinitions(s) {
		def, err := directiveDefinition(d)
		if err != nil {
			return nil, errors.Wrapf(err, "error converting directive %v", d.Name)
		}
		doc.Directives = append(doc.Directives, def)
	}

	return doc, nil
}

// schemaDefinition returns nil if the roots use the default names.
func schemaDefinition(s *schemafu.Schema) *ast.SchemaDefinition {
	def := &ast.SchemaDefinition{}
	conventional := true
	for _, root := range []struct {
		Operation   ast.Operation
		Type        *schema.ObjectType
		DefaultName string
	}{
		{ast.Query, s.Query, "Query"},
		{ast.Mutation, s.Mutation, "Mutation"},
		{ast.Subscription, s.Subscription, "Subscription"},
	} {
		if root.Type == nil {
			continue
		}
		conventional = conventional && root.Type.Name == root.DefaultName
		def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{
			Operation: root.Operation,
			Type:      root.Type.Name,
		})
	}
	if conventional {
		return nil
	}
	return def
}

func namedTypes(s *schemafu.Schema) []schema.NamedType {
	var ret []schema.NamedType
	for _, root := range []*schema.ObjectType{s.Query, s.Mutation, s.Subscription} {
		if root != nil {
			ret = append(ret, root)
		}
	}
	for _, t := range s.Types {
		if !schema.IsBuiltin(t) {
			ret = append(ret, t)
		}
	}
	return ret
}

func directiveDefinitions(s *schemafu.Schema) []*schema.DirectiveDefinition {
	var ret []*schema.DirectiveDefinition
	seen := map[string]struct{}{}
	add := func(d *schema.DirectiveDefinition) {
		if _, ok := preludeDirectives[d.Name]; ok {
			return
		}
		if _, ok := seen[d.Name]; !ok {
			seen[d.Name] = struct{}{}
			ret = append(ret, d)
		}
	}

	for _, d := range s.Directives {
		add(d)
	}

	visited := map[interface{}]struct{}{}
	for _, t := range namedTypes(s) {
		schema.Inspect(t, func(node interface{}) bool {
			if node == nil {
				return false
			}
			if _, ok := visited[node]; ok {
				return false
			}
			visited[node] = struct{}{}
			if d, ok := node.(*schema.Directive); ok {
				add(d.Definition)
			}
			return true
		})
	}
	return ret
}

func definition(t schema.NamedType) (*ast.Definition, error) {
	var err error
	switch t := t.(type) {
	case *schema.ObjectType:
		def := &ast.Definition{
			Kind:        ast.Object,
			Name:        t.Name,
			Description: t.Description,
		}
		for _, iface := range t.ImplementedInterfaces {
			def.Interfaces = append(def.Interfaces, iface.TypeName())
		}
		if def.Fields, err = fields(t.Fields); err != nil {
			return nil, err
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.InterfaceType:
		def := &ast.Definition{
			Kind:        ast.Interface,
			Name:        t.Name,
			Description: t.Description,
		}
		if def.Fields, err = fields(t.Fields); err != nil {
			return nil, err
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.UnionType:
		def := &ast.Definition{
			Kind:        ast.Union,
			Name:        t.Name,
			Description: t.Description,
		}
		for _, member := range t.MemberTypes {
			def.Types = append(def.Types, member.TypeName())
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.EnumType:
		def := &ast.Definition{
			Kind:        ast.Enum,
			Name:        t.Name,
			Description: t.Description,
		}
		for _, v := range t.Values {
			value := &ast.EnumValueDefinition{
				Name:        v.Name,
				Description: v.Description,
			}
			if value.Directives, err = directives(v.Directives); err != nil {
				return nil, err
			}
			value.Directives = appendDeprecation(value.Directives, v.DeprecationReason)
			def.EnumValues = append(def.EnumValues, value)
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.ScalarType:
		def := &ast.Definition{
			Kind:        ast.Scalar,
			Name:        t.Name,
			Description: t.Description,
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.InputObjectType:
		def := &ast.Definition{
			Kind:        ast.InputObject,
			Name:        t.Name,
			Description: t.Description,
		}
		for _, f := range t.Fields {
			field := &ast.FieldDefinition{
				Name:        f.Name,
				Description: f.Description,
				Type:        typeRef(f.Type),
			}
			if field.DefaultValue, err = defaultValue(f); err != nil {
				return nil, errors.Wrapf(err, "error converting default of %v", f.Name)
			}
			if field.Directives, err = directives(f.Directives); err != nil {
				return nil, err
			}
			def.Fields = append(def.Fields, field)
		}
		def.Directives, err = directives(t.Directives)
		return def, err
	case *schema.TypeReference:
		return nil, errors.Errorf("unresolved type reference: %v", t.Name)
	}
	return nil, errors.Errorf("unsupported type: %T", t)
}

func fields(defs []*schema.FieldDefinition) (ast.FieldList, error) {
	var ret ast.FieldList
	for _, f := range defs {
		field := &ast.FieldDefinition{
			Name:        f.Name,
			Description: f.Description,
			Type:        typeRef(f.Type),
		}
		for _, arg := range f.Arguments {
			def, err := argumentDefinition(arg)
			if err != nil {
				return nil, errors.Wrapf(err, "error converting argument %v of %v", arg.Name, f.Name)
			}
			field.Arguments = append(field.Arguments, def)
		}
		var err error
		if field.Directives, err = directives(f.Directives); err != nil {
			return nil, errors.Wrapf(err, "error converting directives of %v", f.Name)
		}
		field.Directives = appendDeprecation(field.Directives, f.DeprecationReason)
		ret = append(ret, field)
	}
	return ret, nil
}

func argumentDefinition(arg *schema.InputValueDefinition) (*ast.ArgumentDefinition, error) {
	def := &ast.ArgumentDefinition{
		Name:        arg.Name,
		Description: arg.Description,
		Type:        typeRef(arg.Type),
	}
	var err error
	if def.DefaultValue, err = defaultValue(arg); err != nil {
		return nil, err
	}
	def.Directives, err = directives(arg.Directives)
	return def, err
}

// generatedPosition marks a definition as coming from the schema rather than from the GraphQL
// prelude. The formatter decides whether to print directive definitions by their source.
func generatedPosition() *ast.Position {
	return &ast.Position{
		Src: &ast.Source{
			Name: "schema",
		},
	}
}

func directiveDefinition(d *schema.DirectiveDefinition) (*ast.DirectiveDefinition, error) {
	def := &ast.DirectiveDefinition{
		Name:        d.Name,
		Description: d.Description,
		Position:    generatedPosition(),
	}
	for _, l := range d.Locations {
		def.Locations = append(def.Locations, ast.DirectiveLocation(l))
	}
	for _, arg := range d.Arguments {
		argDef, err := argumentDefinition(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "error converting argument %v", arg.Name)
		}
		def.Arguments = append(def.Arguments, argDef)
	}
	return def, nil
}

func directives(applied []*schema.Directive) (ast.DirectiveList, error) {
	var ret ast.DirectiveList
	for _, d := range applied {
		directive := &ast.Directive{
			Name: d.Definition.Name,
		}
		for _, arg := range d.Arguments {
			var t schema.Type
			if def := d.Definition.Argument(arg.Name); def != nil {
				t = def.Type
			}
			v, err := Value(arg.Value, t)
			if err != nil {
				return nil, errors.Wrapf(err, "error converting argument %v of @%v", arg.Name, d.Definition.Name)
			}
			directive.Arguments = append(directive.Arguments, &ast.Argument{
				Name:  arg.Name,
				Value: v,
			})
		}
		ret = append(ret, directive)
	}
	return ret, nil
}

func appendDeprecation(list ast.DirectiveList, reason string) ast.DirectiveList {
	if reason == "" {
		return list
	}
	return append(list, &ast.Directive{
		Name: "deprecated",
		Arguments: ast.ArgumentList{
			{
				Name: "reason",
				Value: &ast.Value{
					Kind: ast.StringValue,
					Raw:  reason,
				},
			},
		},
	})
}

func defaultValue(def *schema.InputValueDefinition) (*ast.Value, error) {
	if !def.HasDefaultValue() {
		return nil, nil
	}
	return Value(def.DefaultValue, def.Type)
}

func typeRef(t schema.Type) *ast.Type {
	switch t := t.(type) {
	case *schema.NonNullType:
		ret := typeRef(t.Type)
		ret.NonNull = true
		return ret
	case *schema.ListType:
		return ast.ListType(typeRef(t.Type), nil)
	case schema.NamedType:
		return ast.NamedType(t.TypeName(), nil)
	}
	return nil
}
