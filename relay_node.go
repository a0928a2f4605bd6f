package schemafu

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// nodeQueries maps node type names to the names of the queries that fetch them by id.
type nodeQueries struct {
	queries map[string]string
	order   []string
}

func newNodeQueries() *nodeQueries {
	return &nodeQueries{
		queries: map[string]string{},
	}
}

func (t *nodeQueries) put(typeName, query string) {
	if _, ok := t.queries[typeName]; !ok {
		t.order = append(t.order, typeName)
	}
	t.queries[typeName] = query
}

func (t *nodeQueries) putIfAbsent(typeName, query string) {
	if _, ok := t.queries[typeName]; !ok {
		t.put(typeName, query)
	}
}

func (t *nodeQueries) Get(typeName string) (string, bool) {
	q, ok := t.queries[typeName]
	return q, ok
}

func (t *nodeQueries) Len() int {
	return len(t.order)
}

// TypeNames returns the node type names in the order they were first added.
func (t *nodeQueries) TypeNames() []string {
	return append([]string(nil), t.order...)
}

// nodeQueriesByType determines which queries can fetch each node type. Only queries with a Relay id
// argument named "id" and a resolver requiring exactly that argument are eligible. Queries returning
// objects always take precedence over queries returning interfaces or unions.
func (b *Builder) nodeQueriesByType(ops []*Operation, fields []*schema.FieldDefinition) *nodeQueries {
	bc := b.bc
	ret := newNodeQueries()
	for i, op := range ops {
		field := fields[i]
		arg := field.Argument(relay.IDFieldName)
		opArg := op.Argument(relay.IDFieldName)
		if arg == nil || opArg == nil || !opArg.RelayID || schema.NamedTypeName(arg.Type) != schema.IDType.Name {
			continue
		}
		resolver := op.Resolver(relay.IDFieldName)
		if resolver == nil {
			continue
		}

		named, ok := schema.UnwrapNonNull(field.Type).(schema.NamedType)
		if !ok {
			continue
		}
		resolved, ok := bc.TypeCache.Resolve(named.TypeName())
		if !ok {
			continue
		}

		switch t := resolved.(type) {
		case *schema.ObjectType:
			if t.Implements(relay.NodeInterfaceName) {
				ret.put(t.Name, field.Name)
			}
		case *schema.InterfaceType:
			for _, mapped := range bc.TypeRegistry.OutputTypes(t.Name) {
				if obj, ok := mapped.Type.(*schema.ObjectType); ok && obj.Implements(relay.NodeInterfaceName) {
					ret.putIfAbsent(obj.Name, field.Name)
				}
			}
		case *schema.UnionType:
			returnType := resolver.ReturnType
			if returnType == nil {
				returnType = op.Type
			}
			for _, mapped := range bc.TypeRegistry.OutputTypes(t.Name) {
				obj, ok := mapped.Type.(*schema.ObjectType)
				if !ok || !obj.Implements(relay.NodeInterfaceName) || mapped.Native == nil {
					continue
				}
				if returnType != nil && assignable(mapped.Native, returnType) {
					ret.putIfAbsent(obj.Name, field.Name)
				}
			}
		}
	}
	return ret
}

// assignable returns true if values of the member type can be returned by a resolver whose static
// return type is returnType.
func assignable(member, returnType reflect.Type) bool {
	if returnType.Kind() == reflect.Interface {
		return implements(member, returnType)
	}
	return indirect(member) == indirect(returnType)
}

func (b *Builder) nodeField(table *nodeQueries) (*schema.FieldDefinition, error) {
	bc := b.bc
	node, err := b.nodeInterface(nil)
	if err != nil {
		return nil, err
	}
	iface, ok := node.(*schema.InterfaceType)
	if !ok {
		return nil, &MappingError{
			Message: fmt.Sprintf("%v must be an interface", relay.NodeInterfaceName),
		}
	}
	field := relay.NodeFieldDefinition(iface)
	if err := b.RegisterResolver(bc.QueryRoot, field.Name, b.nodeResolver(table)); err != nil {
		return nil, err
	}
	return field, nil
}

// nodeResolver decodes the global id given to the node query and dispatches to the query that
// fetches nodes of its type.
func (b *Builder) nodeResolver(table *nodeQueries) schema.Resolver {
	codec := b.bc.Relay.IDCodec
	registry := b.bc.CodeRegistry
	queryRoot := b.bc.QueryRoot
	return func(env *schema.ResolveEnv) (interface{}, error) {
		id := fmt.Sprint(env.Argument(relay.IDFieldName))
		typeName, err := codec.Decode(id, nil)
		if err != nil {
			return nil, &InvalidArgumentError{
				Value:   id,
				Message: id + " is not a valid Relay node ID",
			}
		}
		query, ok := table.Get(typeName)
		if !ok {
			return nil, &InvalidArgumentError{
				Value:   typeName,
				Message: typeName + " is not a Relay node type or no registered query can fetch it by ID",
			}
		}
		resolver := registry.Resolver(schema.Coordinates(queryRoot, query))
		if resolver == nil {
			return nil, errors.Errorf("no resolver registered for %v.%v", queryRoot, query)
		}
		return resolver(env)
	}
}
