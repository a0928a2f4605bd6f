package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	foo := &ObjectType{
		Name: "Foo",
		Fields: []*FieldDefinition{
			{Name: "a", Type: StringType},
		},
	}
	for name, tc := range map[string]struct {
		Nodes []interface{}
		Okay  bool
	}{
		"Object": {
			Nodes: []interface{}{foo},
			Okay:  true,
		},
		"UnresolvedReference": {
			Nodes: []interface{}{&ObjectType{
				Name: "Bar",
				Fields: []*FieldDefinition{
					{Name: "foo", Type: &TypeReference{Name: "Foo"}},
				},
			}},
		},
		"DuplicateName": {
			Nodes: []interface{}{foo, &ObjectType{
				Name: "Foo",
				Fields: []*FieldDefinition{
					{Name: "a", Type: StringType},
				},
			}},
		},
		"BuiltinOverride": {
			Nodes: []interface{}{&ObjectType{
				Name: "Bar",
				Fields: []*FieldDefinition{
					{Name: "a", Type: &ScalarType{Name: "String"}},
				},
			}},
		},
		"NoFields": {
			Nodes: []interface{}{&ObjectType{Name: "Bar"}},
		},
		"DuplicateField": {
			Nodes: []interface{}{&ObjectType{
				Name: "Bar",
				Fields: []*FieldDefinition{
					{Name: "a", Type: StringType},
					{Name: "a", Type: IntType},
				},
			}},
		},
		"InputAsOutput": {
			Nodes: []interface{}{&ObjectType{
				Name: "Bar",
				Fields: []*FieldDefinition{
					{Name: "a", Type: &InputObjectType{
						Name: "BarInput",
						Fields: []*InputValueDefinition{
							{Name: "a", Type: StringType},
						},
					}},
				},
			}},
		},
		"IllegalName": {
			Nodes: []interface{}{&ObjectType{
				Name: "__Bar",
				Fields: []*FieldDefinition{
					{Name: "a", Type: StringType},
				},
			}},
		},
		"DirectiveWithoutLocations": {
			Nodes: []interface{}{&DirectiveDefinition{Name: "foo"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			err := Validate(tc.Nodes...)
			if tc.Okay {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestReplaceTypeReferences(t *testing.T) {
	node := &ObjectType{
		Name: "Node",
		Fields: []*FieldDefinition{
			{Name: "id", Type: NewNonNullType(IDType)},
			{Name: "children", Type: NewListType(NewNonNullType(&TypeReference{Name: "Node"}))},
		},
	}
	union := &UnionType{
		Name:        "Any",
		MemberTypes: []NamedType{&TypeReference{Name: "Node"}},
	}
	resolve := func(name string) (NamedType, bool) {
		if name == "Node" {
			return node, true
		}
		return nil, false
	}

	require.NoError(t, ReplaceTypeReferences(resolve, node, union))
	assert.Same(t, node, UnwrapType(node.Field("children").Type))
	assert.Same(t, node, union.MemberTypes[0])
	assert.NoError(t, Validate(node, union))

	assert.Error(t, ReplaceTypeReferences(resolve, &ObjectType{
		Name: "Other",
		Fields: []*FieldDefinition{
			{Name: "missing", Type: &TypeReference{Name: "Missing"}},
		},
	}))
}

func TestShape(t *testing.T) {
	a := &ObjectType{
		Name:        "Foo",
		Description: "a",
		Fields: []*FieldDefinition{
			{Name: "a", Type: StringType},
			{Name: "b", Type: NewNonNullType(IntType), Arguments: []*InputValueDefinition{
				{Name: "x", Type: BooleanType},
			}},
		},
	}
	b := &ObjectType{
		Name:        "Foo",
		Description: "b",
		Fields: []*FieldDefinition{
			{Name: "b", Type: NewNonNullType(IntType), Arguments: []*InputValueDefinition{
				{Name: "x", Type: BooleanType},
			}},
			{Name: "a", Type: StringType},
		},
	}
	c := &ObjectType{
		Name: "Foo",
		Fields: []*FieldDefinition{
			{Name: "a", Type: NewNonNullType(StringType)},
		},
	}
	assert.Equal(t, Shape(a), Shape(b))
	assert.NotEqual(t, Shape(a), Shape(c))
	assert.Equal(t, Shape(&TypeReference{Name: "Foo"}), Shape(&TypeReference{Name: "Foo"}))
}

func TestCodeRegistry(t *testing.T) {
	resolver := func(env *ResolveEnv) (interface{}, error) {
		return env.Argument("x"), nil
	}

	r := NewCodeRegistry()
	require.NoError(t, r.Register(Coordinates("Query", "a"), resolver))
	assert.Error(t, r.Register(Coordinates("Query", "a"), resolver))
	assert.Error(t, r.Register(Coordinates("Query", "b"), nil))

	fork := r.Fork()
	require.NoError(t, fork.Register(Coordinates("Foo", "a"), resolver))
	require.NoError(t, fork.Register(Coordinates("Bar", "a"), resolver))
	require.NoError(t, r.Merge(fork, "Foo"))
	assert.Nil(t, r.Resolver(Coordinates("Foo", "a")))
	assert.NotNil(t, r.Resolver(Coordinates("Bar", "a")))
	assert.Equal(t, []FieldCoordinates{Coordinates("Query", "a"), Coordinates("Bar", "a")}, r.Coordinates())

	assert.Error(t, r.Replace(Coordinates("Query", "missing"), resolver))
	require.NoError(t, r.Replace(Coordinates("Bar", "a"), func(env *ResolveEnv) (interface{}, error) {
		return "replaced", nil
	}))
	assert.Len(t, r.Coordinates(), 2)
	replaced, err := r.Resolver(Coordinates("Bar", "a"))(&ResolveEnv{})
	require.NoError(t, err)
	assert.Equal(t, "replaced", replaced)

	v, err := r.Resolver(Coordinates("Query", "a"))(&ResolveEnv{
		Arguments: map[string]interface{}{"x": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestInputValueDefinition_HasDefaultValue(t *testing.T) {
	assert.False(t, (&InputValueDefinition{}).HasDefaultValue())
	assert.True(t, (&InputValueDefinition{DefaultValue: Null}).HasDefaultValue())
	assert.True(t, (&InputValueDefinition{DefaultValue: 0}).HasDefaultValue())
}
