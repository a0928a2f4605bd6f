package schemafu

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

type testItem struct {
	ID    int `graphql:"id,relayid"`
	Title string
}

func (testItem) GraphQLTypeName() string { return "Item" }

func itemQuery() *Operation {
	return &Operation{
		Name: "item",
		Type: reflect.TypeOf(&testItem{}),
		Arguments: []*OperationArgument{
			{Name: "id", Type: reflect.TypeOf(0), RelayID: true},
		},
		Resolvers: []*Resolver{
			{
				Arguments: []string{"id"},
				Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
					return &testItem{ID: env.Argument("id").(int), Title: "found"}, nil
				},
			},
		},
	}
}

func createItemMutation(got *map[string]interface{}) *Operation {
	return &Operation{
		Name: "createItem",
		Type: reflect.TypeOf(&testItem{}),
		Arguments: []*OperationArgument{
			{Name: "title", Type: reflect.TypeOf((*string)(nil))},
		},
		Resolvers: []*Resolver{
			{
				Arguments: []string{"title"},
				Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
					*got = env.Arguments
					return &testItem{ID: 7, Title: *env.Argument("title").(*string)}, nil
				},
			},
		},
	}
}

func TestRelayMutation(t *testing.T) {
	var got map[string]interface{}
	s, err := Build(&Config{
		Logger:    testLogger(),
		Queries:   []*Operation{itemQuery()},
		Mutations: []*Operation{createItemMutation(&got)},
		Relay: RelayConfig{
			CompliantMutations: true,
		},
	})
	require.NoError(t, err)

	input, ok := s.Type("CreateItemInput").(*schema.InputObjectType)
	require.True(t, ok)
	require.Len(t, input.Fields, 2)
	assert.Equal(t, "clientMutationId", input.Fields[0].Name)
	assert.Equal(t, "String!", input.Fields[0].Type.String())
	assert.Equal(t, "title", input.Fields[1].Name)
	assert.Equal(t, "String", input.Fields[1].Type.String())

	payload, ok := s.Type("CreateItemPayload").(*schema.ObjectType)
	require.True(t, ok)
	assert.Equal(t, "String!", payload.Field("clientMutationId").Type.String())
	assert.Equal(t, "ID!", payload.Field("id").Type.String())
	assert.Equal(t, "String!", payload.Field("title").Type.String())

	field := s.Mutation.Field("createItem")
	require.NotNil(t, field)
	assert.Same(t, payload, field.Type)
	require.Len(t, field.Arguments, 1)
	assert.Equal(t, "input", field.Arguments[0].Name)
	assert.Equal(t, "CreateItemInput!", field.Arguments[0].Type.String())

	result, err := s.Resolver("Mutation", "createItem")(&schema.ResolveEnv{
		Arguments: map[string]interface{}{
			"input": map[string]interface{}{
				"clientMutationId": "abc",
				"title":            "foo",
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", got["clientMutationId"])

	clientMutationID, err := s.Resolver("CreateItemPayload", "clientMutationId")(&schema.ResolveEnv{Object: result})
	require.NoError(t, err)
	assert.Equal(t, "abc", clientMutationID)

	title, err := s.Resolver("CreateItemPayload", "title")(&schema.ResolveEnv{Object: result})
	require.NoError(t, err)
	assert.Equal(t, "foo", title)

	id, err := s.Resolver("CreateItemPayload", "id")(&schema.ResolveEnv{Object: result})
	require.NoError(t, err)
	var internalID int
	typeName, err := relay.GlobalIDCodec{}.Decode(id.(string), &internalID)
	require.NoError(t, err)
	assert.Equal(t, "Item", typeName)
	assert.Equal(t, 7, internalID)
}

func TestRelayMutation_WrapperField(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Mutations: []*Operation{
			{
				Name: "deleteItems",
				Type: reflect.TypeOf(0),
				Arguments: []*OperationArgument{
					{Name: "ids", Type: reflect.TypeOf([]int{}), RelayID: true},
				},
				Resolvers: []*Resolver{
					{
						Arguments: []string{"ids"},
						Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
							return len(env.Argument("ids").([]int)), nil
						},
					},
				},
			},
		},
		Relay: RelayConfig{
			CompliantMutations:      true,
			WrapperFieldName:        "count",
			WrapperFieldDescription: "The number of deleted items.",
		},
	})
	require.NoError(t, err)

	payload, ok := s.Type("DeleteItemsPayload").(*schema.ObjectType)
	require.True(t, ok)
	require.Len(t, payload.Fields, 2)
	assert.Equal(t, "Int!", payload.Field("count").Type.String())
	assert.Equal(t, "The number of deleted items.", payload.Field("count").Description)

	codec := relay.GlobalIDCodec{}
	a, err := codec.Encode("Item", 1)
	require.NoError(t, err)
	b, err := codec.Encode("Item", 2)
	require.NoError(t, err)

	result, err := s.Resolver("Mutation", "deleteItems")(&schema.ResolveEnv{
		Arguments: map[string]interface{}{
			"input": map[string]interface{}{
				"clientMutationId": "x",
				"ids":              []interface{}{a, b},
			},
		},
	})
	require.NoError(t, err)

	count, err := s.Resolver("DeleteItemsPayload", "count")(&schema.ResolveEnv{Object: result})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRelayMutation_Disabled(t *testing.T) {
	var got map[string]interface{}
	s, err := Build(&Config{
		Logger:    testLogger(),
		Mutations: []*Operation{createItemMutation(&got)},
	})
	require.NoError(t, err)

	field := s.Mutation.Field("createItem")
	require.NotNil(t, field)
	assert.Equal(t, "Item", field.Type.String())
	assert.Nil(t, s.Type("CreateItemPayload"))
	require.Len(t, field.Arguments, 1)
	assert.Equal(t, "title", field.Arguments[0].Name)
}
