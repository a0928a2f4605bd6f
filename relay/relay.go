// Package relay implements the building blocks of the Relay server specification: global object
// identification, cursor connections, and input/payload mutations.
package relay

import (
	"reflect"
	"strings"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

const (
	NodeInterfaceName         = "Node"
	NodeQueryName             = "node"
	IDFieldName               = "id"
	ClientMutationIDFieldName = "clientMutationId"
	InputArgumentName         = "input"

	connectionSuffix = "Connection"
	edgesFieldName   = "edges"
	pageInfoField    = "pageInfo"
)

// NewNodeInterface returns a new Node interface definition. Each schema should have exactly one.
func NewNodeInterface() *schema.InterfaceType {
	return &schema.InterfaceType{
		Name:        NodeInterfaceName,
		Description: "An object with a globally unique ID.",
		Fields: []*schema.FieldDefinition{
			{
				Name:        IDFieldName,
				Description: "The ID of the object.",
				Type:        schema.NewNonNullType(schema.IDType),
			},
		},
	}
}

// NodeFieldDefinition returns the definition of the node(id: ID!) query for the given Node
// interface.
func NodeFieldDefinition(node *schema.InterfaceType) *schema.FieldDefinition {
	return &schema.FieldDefinition{
		Name:        NodeQueryName,
		Description: "Fetches an object given its ID.",
		Type:        node,
		Arguments: []*schema.InputValueDefinition{
			{
				Name:        IDFieldName,
				Description: "The ID of an object.",
				Type:        schema.NewNonNullType(schema.IDType),
			},
		},
	}
}

// ConnectionArgument describes one of the arguments defined by the cursor connections
// specification.
type ConnectionArgument struct {
	Name     string
	TypeName string
}

var ForwardPaginationArguments = []ConnectionArgument{
	{Name: "first", TypeName: schema.IntType.Name},
	{Name: "after", TypeName: schema.StringType.Name},
}

var BackwardPaginationArguments = []ConnectionArgument{
	{Name: "last", TypeName: schema.IntType.Name},
	{Name: "before", TypeName: schema.StringType.Name},
}

// ConnectionArguments returns all arguments defined by the specification.
func ConnectionArguments() []ConnectionArgument {
	return append(append([]ConnectionArgument(nil), ForwardPaginationArguments...), BackwardPaginationArguments...)
}

// IsConnectionType returns true if t is an object type shaped like a connection: its name ends
// with "Connection" and it has an edges list of objects with node and cursor fields as well as a
// pageInfo field. References are resolved via resolve, which may be nil.
func IsConnectionType(t schema.Type, resolve func(name string) (schema.NamedType, bool)) bool {
	obj, ok := resolveObject(schema.UnwrapNonNull(t), resolve)
	if !ok || obj.Name == connectionSuffix || !strings.HasSuffix(obj.Name, connectionSuffix) {
		return false
	}
	edges := obj.Field(edgesFieldName)
	if edges == nil || obj.Field(pageInfoField) == nil {
		return false
	}
	list, ok := schema.UnwrapNonNull(edges.Type).(*schema.ListType)
	if !ok {
		return false
	}
	edge, ok := resolveObject(schema.UnwrapNonNull(list.Type), resolve)
	return ok && edge.Field("node") != nil && edge.Field("cursor") != nil
}

func resolveObject(t schema.Type, resolve func(name string) (schema.NamedType, bool)) (*schema.ObjectType, bool) {
	if ref, ok := t.(*schema.TypeReference); ok && resolve != nil {
		if resolved, ok := resolve(ref.Name); ok {
			t = resolved
		}
	}
	obj, ok := t.(*schema.ObjectType)
	return obj, ok
}

var pageInfoType = reflect.TypeOf(PageInfo{})

// ConnectionNodeType returns the node type of a Go connection type. Any struct with an Edges slice
// of structs with Node and Cursor fields, and a PageInfo field of type PageInfo qualifies.
func ConnectionNodeType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	if f, ok := t.FieldByName("PageInfo"); !ok || f.Type != pageInfoType {
		return nil, false
	}
	edges, ok := t.FieldByName("Edges")
	if !ok || edges.Type.Kind() != reflect.Slice {
		return nil, false
	}
	return EdgeNodeType(edges.Type.Elem())
}

// EdgeNodeType returns the node type of a Go edge type, which must be a struct with Node and
// Cursor fields.
func EdgeNodeType(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	cursor, ok := t.FieldByName("Cursor")
	if !ok || cursor.Type.Kind() != reflect.String {
		return nil, false
	}
	node, ok := t.FieldByName("Node")
	if !ok {
		return nil, false
	}
	return node.Type, true
}
