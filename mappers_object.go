package schemafu

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// ObjectMapper maps structs to object types, or to input object types when used as inputs.
type ObjectMapper struct{}

func (m *ObjectMapper) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Struct
}

func (m *ObjectMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	name := TypeName(t)
	if name == "" {
		return nil, env.Errorf("anonymous structs cannot be mapped")
	}
	return env.Cached(name, t, func() (schema.NamedType, error) {
		obj := &schema.ObjectType{
			Name:        name,
			Description: typeDescription(t),
		}
		if err := buildObjectType(obj, t, env); err != nil {
			return nil, err
		}
		return obj, nil
	})
}

// buildObjectType adds the fields and interfaces of t to obj. Fields already present are kept.
func buildObjectType(obj *schema.ObjectType, t reflect.Type, env *MappingEnvironment) error {
	bc := env.BuildContext

	var interfaces []reflect.Type
	for _, iface := range bc.Interfaces() {
		if implements(t, iface) {
			interfaces = append(interfaces, iface)
		}
	}

	isNode, err := addObjectFields(obj, t, interfaces, env)
	if err != nil {
		return err
	}
	if len(obj.Fields) == 0 {
		return env.Errorf("%v has no fields", obj.Name)
	}

	// Mapping the fields may have discovered more interfaces.
	if err := implementInterfaces(obj, t, env); err != nil {
		return err
	}

	if isNode && !obj.Implements(relay.NodeInterfaceName) {
		node, err := env.Builder.nodeInterface(env.Element)
		if err != nil {
			return err
		}
		obj.ImplementedInterfaces = append(obj.ImplementedInterfaces, node)
		bc.TypeRegistry.RegisterPossibleType(relay.NodeInterfaceName, MappedType{
			Native: t,
			Type:   obj,
		})
	}
	return nil
}

// addObjectFields maps the child queries of t that obj doesn't have yet. It returns true if one of
// them is a Relay id.
func addObjectFields(obj *schema.ObjectType, t reflect.Type, interfaces []reflect.Type, env *MappingEnvironment) (bool, error) {
	ops, err := env.BuildContext.OperationSource.ChildQueries(t, interfaces)
	if err != nil {
		return false, errors.Wrapf(err, "error discovering fields of %v", t)
	}
	isNode := false
	for _, op := range ops {
		if obj.Field(op.Name) != nil {
			continue
		}
		field, err := env.Builder.MapField(obj.Name, op, env)
		if err != nil {
			return false, errors.Wrapf(err, "error mapping field %v of %v", op.Name, obj.Name)
		}
		obj.Fields = append(obj.Fields, field)
		if op.RelayID && field.Name == relay.IDFieldName {
			isNode = true
		}
	}
	return isNode, nil
}

// implementInterfaces declares every known interface t implements on obj, adding any fields of
// the interface that obj is missing. Objects completed before one of their interfaces was
// discovered are brought up to date this way when the interface is mapped.
func implementInterfaces(obj *schema.ObjectType, t reflect.Type, env *MappingEnvironment) error {
	bc := env.BuildContext
	for i := 0; i < len(bc.Interfaces()); i++ {
		iface := bc.Interfaces()[i]
		if !implements(t, iface) || obj.Implements(TypeName(iface)) {
			continue
		}
		if _, err := addObjectFields(obj, t, []reflect.Type{iface}, env); err != nil {
			return err
		}
		mapped, err := env.Builder.MapOutputType(iface, env.Child(env.Element, false))
		if err != nil {
			return err
		}
		if named, ok := mapped.(schema.NamedType); ok && !obj.Implements(named.TypeName()) {
			obj.ImplementedInterfaces = append(obj.ImplementedInterfaces, named)
		}
	}
	return nil
}

func (m *ObjectMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	name := TypeName(t)
	if name == "" {
		return nil, env.Errorf("anonymous structs cannot be mapped")
	}
	if !strings.HasSuffix(name, "Input") {
		name += "Input"
	}
	return env.Cached(name, t, func() (schema.NamedType, error) {
		fields, err := env.BuildContext.OperationSource.InputFields(t)
		if err != nil {
			return nil, errors.Wrapf(err, "error discovering input fields of %v", t)
		}
		input := &schema.InputObjectType{
			Name:        name,
			Description: typeDescription(t),
		}
		for _, f := range fields {
			def, err := env.Builder.MapInputField(f, env)
			if err != nil {
				return nil, errors.Wrapf(err, "error mapping input field %v of %v", f.Name, name)
			}
			input.Fields = append(input.Fields, def)
		}
		if len(input.Fields) == 0 {
			return nil, env.Errorf("%v has no fields", name)
		}
		return input, nil
	})
}

// InterfaceMapper maps Go interfaces to interface types. The interface's fields are its
// methods, and its possible types are the types in Config.Types that implement it.
type InterfaceMapper struct{}

func (m *InterfaceMapper) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() > 0 && !isUnion(t)
}

func (m *InterfaceMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	bc := env.BuildContext
	name := TypeName(t)
	if name == "" {
		return nil, env.Errorf("anonymous interfaces cannot be mapped")
	}
	bc.addInterface(t)
	return env.Cached(name, t, func() (schema.NamedType, error) {
		iface := &schema.InterfaceType{
			Name:        name,
			Description: typeDescription(t),
		}
		ops, err := bc.OperationSource.ChildQueries(t, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "error discovering fields of %v", t)
		}
		for _, op := range ops {
			field, err := env.Builder.MapField(name, op, env)
			if err != nil {
				return nil, errors.Wrapf(err, "error mapping field %v of %v", op.Name, name)
			}
			iface.Fields = append(iface.Fields, field)
		}
		if len(iface.Fields) == 0 {
			return nil, env.Errorf("%v has no fields", name)
		}

		implementations := bc.ConcreteSubTypes(t)
		if len(implementations) == 0 {
			bc.Logger.WithField("type", name).Warn("interface has no implementations in Config.Types")
		}
		for _, impl := range implementations {
			obj, err := mapPossibleType(impl, env)
			if err != nil {
				return nil, err
			}
			if completed, ok := obj.(*schema.ObjectType); ok && !completed.Implements(name) {
				if err := implementInterfaces(completed, impl, env); err != nil {
					return nil, err
				}
			}
			bc.TypeRegistry.RegisterPossibleType(name, MappedType{
				Native: impl,
				Type:   obj,
			})
		}
		return iface, nil
	})
}

// MapInput maps the interface to the input type of its only implementation.
func (m *InterfaceMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	implementations := env.BuildContext.ConcreteSubTypes(t)
	if len(implementations) != 1 {
		return nil, env.Errorf("%v is used as an input, so it must have exactly one implementation in Config.Types, but it has %v", t, len(implementations))
	}
	return env.Builder.MapInputTypeWithSkip(implementations[0], skipNonNull, env)
}

func mapPossibleType(t reflect.Type, env *MappingEnvironment) (schema.NamedType, error) {
	mapped, err := env.Builder.MapOutputType(t, env.Child(env.Element, false))
	if err != nil {
		return nil, err
	}
	named, ok := schema.UnwrapType(mapped).(schema.NamedType)
	if !ok {
		return nil, env.Errorf("%v did not map to a named type", t)
	}
	switch named.(type) {
	case *schema.ObjectType, *schema.TypeReference:
		return named, nil
	}
	return nil, env.Errorf("%v must map to an object type, but it maps to %v", t, named)
}

// Union is implemented by Go interfaces that should be mapped to union types. The union's members
// are the types in Config.Types that implement it. Members can embed UnionMember to satisfy it:
//
//	type SearchResult interface {
//	    schemafu.Union
//	    isSearchResult()
//	}
type Union interface {
	GraphQLUnion()
}

// UnionMember can be embedded by the members of unions.
type UnionMember struct{}

func (UnionMember) GraphQLUnion() {}

var unionType = reflect.TypeOf((*Union)(nil)).Elem()

func isUnion(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t != unionType && t.Implements(unionType)
}

// UnionMapper maps Go interfaces implementing Union to union types.
type UnionMapper struct{}

func (m *UnionMapper) Supports(t reflect.Type) bool {
	return isUnion(t)
}

func (m *UnionMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	bc := env.BuildContext
	name := TypeName(t)
	if name == "" {
		return nil, env.Errorf("anonymous unions cannot be mapped")
	}
	return env.Cached(name, t, func() (schema.NamedType, error) {
		union := &schema.UnionType{
			Name:        name,
			Description: typeDescription(t),
		}
		for _, member := range bc.ConcreteSubTypes(t) {
			obj, err := mapPossibleType(member, env)
			if err != nil {
				return nil, err
			}
			union.MemberTypes = append(union.MemberTypes, obj)
			bc.TypeRegistry.RegisterPossibleType(name, MappedType{
				Native: member,
				Type:   obj,
			})
		}
		if len(union.MemberTypes) == 0 {
			return nil, env.Errorf("union %v has no members in Config.Types", name)
		}
		return union, nil
	})
}

func (m *UnionMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return nil, env.Errorf("unions cannot be used as inputs")
}

// ConnectionMapper maps structs shaped like relay.Connection to <Node>Connection and <Node>Edge
// object types.
type ConnectionMapper struct{}

func (m *ConnectionMapper) Supports(t reflect.Type) bool {
	_, ok := relay.ConnectionNodeType(t)
	return ok
}

func (m *ConnectionMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	nodeType, _ := relay.ConnectionNodeType(t)
	node, err := env.Builder.MapOutputType(nodeType, env)
	if err != nil {
		return nil, err
	}
	base := schema.NamedTypeName(node)
	if base == "" {
		return nil, env.Errorf("connection node type %v has no name", nodeType)
	}
	name := base + "Connection"
	edgesField, _ := t.FieldByName("Edges")
	pageInfoField, _ := t.FieldByName("PageInfo")

	return env.Cached(name, t, func() (schema.NamedType, error) {
		edge, err := mapEdge(base+"Edge", edgesField.Type.Elem(), node, env)
		if err != nil {
			return nil, err
		}
		pageInfo, err := env.Builder.MapOutputType(pageInfoField.Type, env)
		if err != nil {
			return nil, err
		}

		conn := &schema.ObjectType{
			Name:        name,
			Description: typeDescription(t),
			Fields: []*schema.FieldDefinition{
				{
					Name: "edges",
					Type: schema.NewNonNullType(schema.NewListType(schema.NewNonNullType(edge))),
				},
				{
					Name: "pageInfo",
					Type: pageInfo,
				},
			},
		}
		if err := env.Builder.RegisterResolver(name, "edges", PropertyResolver("Edges")); err != nil {
			return nil, err
		}
		if err := env.Builder.RegisterResolver(name, "pageInfo", PropertyResolver("PageInfo")); err != nil {
			return nil, err
		}
		if err := buildObjectType(conn, t, env); err != nil {
			return nil, err
		}
		return conn, nil
	})
}

func mapEdge(name string, t reflect.Type, node schema.Type, env *MappingEnvironment) (schema.NamedType, error) {
	return env.Cached(name, t, func() (schema.NamedType, error) {
		edge := &schema.ObjectType{
			Name:        name,
			Description: typeDescription(t),
			Fields: []*schema.FieldDefinition{
				{
					Name: "node",
					Type: node,
				},
				{
					Name: "cursor",
					Type: schema.NewNonNullType(schema.StringType),
				},
			},
		}
		if err := env.Builder.RegisterResolver(name, "node", PropertyResolver("Node")); err != nil {
			return nil, err
		}
		if err := env.Builder.RegisterResolver(name, "cursor", PropertyResolver("Cursor")); err != nil {
			return nil, err
		}
		if err := buildObjectType(edge, t, env); err != nil {
			return nil, err
		}
		return edge, nil
	})
}

func (m *ConnectionMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return nil, env.Errorf("connections cannot be used as inputs")
}
