package schemafu

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

type testCost struct {
	Complexity int `description:"The relative cost of resolving the field."`
}

func (testCost) DirectiveName() string { return "cost" }

func (testCost) DirectiveLocations() []schema.DirectiveLocation {
	return []schema.DirectiveLocation{schema.DirectiveLocationFieldDefinition}
}

type testArgOnly struct{}

func (testArgOnly) DirectiveLocations() []schema.DirectiveLocation {
	return []schema.DirectiveLocation{schema.DirectiveLocationArgumentDefinition}
}

type testCostly struct {
	Title  string
	Author string
}

func (testCostly) GraphQLTypeName() string { return "Costly" }

func (testCostly) GraphQLAnnotations() map[string][]interface{} {
	return map[string][]interface{}{
		"Title":  {testCost{Complexity: 5}},
		"Author": {"ignored", &testCost{Complexity: 2}},
	}
}

type testMisplaced struct {
	Title string
}

func (testMisplaced) GraphQLAnnotations() map[string][]interface{} {
	return map[string][]interface{}{
		"Title": {testArgOnly{}},
	}
}

func TestAnnotationDirectives(t *testing.T) {
	s, err := Build(&Config{
		Logger:  testLogger(),
		Queries: []*Operation{query("costly", testCostly{})},
	})
	require.NoError(t, err)

	obj, ok := s.Type("Costly").(*schema.ObjectType)
	require.True(t, ok)

	title := obj.Field("title")
	require.Len(t, title.Directives, 1)
	cost := title.Directives[0]
	assert.Equal(t, "cost", cost.Definition.Name)
	v, ok := cost.Argument("complexity")
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	require.Len(t, cost.Definition.Arguments, 1)
	assert.Equal(t, "Int!", cost.Definition.Arguments[0].Type.String())
	assert.Equal(t, "The relative cost of resolving the field.", cost.Definition.Arguments[0].Description)

	author := obj.Field("author")
	require.Len(t, author.Directives, 1)
	assert.Same(t, cost.Definition, author.Directives[0].Definition)
	v, _ = author.Directives[0].Argument("complexity")
	assert.Equal(t, 2, v)

	_, err = Build(&Config{
		Logger:  testLogger(),
		Queries: []*Operation{query("misplaced", testMisplaced{})},
	})
	assert.Error(t, err)
}

type testCacheControl struct {
	MaxAge *int `description:"The maximum age of cached results in seconds."`
}

func (testCacheControl) DirectiveLocations() []schema.DirectiveLocation {
	return []schema.DirectiveLocation{schema.DirectiveLocationQuery, schema.DirectiveLocationField}
}

type testCacheHint interface {
	CacheHint()
}

func (testCacheControl) CacheHint() {}

type testUnlocated struct {
	Reason string
}

func TestAdditionalDirectives(t *testing.T) {
	for name, tc := range map[string]struct {
		Directive reflect.Type
		Types     []reflect.Type
		Expected  string
		Error     bool
	}{
		"Struct": {
			Directive: reflect.TypeOf(testCacheControl{}),
			Expected:  "testCacheControl",
		},
		"Interface": {
			Directive: reflect.TypeOf((*testCacheHint)(nil)).Elem(),
			Types:     []reflect.Type{reflect.TypeOf(testCacheControl{})},
			Expected:  "testCacheControl",
		},
		"NoImplementation": {
			Directive: reflect.TypeOf((*testCacheHint)(nil)).Elem(),
			Error:     true,
		},
		"NoLocations": {
			Directive: reflect.TypeOf(testUnlocated{}),
			Error:     true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			s, err := Build(&Config{
				Logger:               testLogger(),
				Queries:              []*Operation{query("foo", "")},
				Types:                tc.Types,
				AdditionalDirectives: []reflect.Type{tc.Directive},
			})
			if tc.Error {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, s.Directives, 1)
			d := s.Directives[0]
			assert.Equal(t, tc.Expected, d.Name)
			assert.Equal(t, []schema.DirectiveLocation{schema.DirectiveLocationQuery, schema.DirectiveLocationField}, d.Locations)
			require.NotNil(t, d.Argument("maxAge"))
			assert.Equal(t, "Int", d.Argument("maxAge").Type.String())
		})
	}
}

func TestTransformers(t *testing.T) {
	var directiveArgs []string
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			query("costly", testCostly{}),
			{
				Name: "search",
				Type: reflect.TypeOf(""),
				Arguments: []*OperationArgument{
					{Name: "text", Type: reflect.TypeOf("")},
				},
				Resolvers: constant(""),
			},
		},
		Transformers: []Transformer{
			{
				Field: func(field *schema.FieldDefinition, op *Operation, b *Builder, bc *BuildContext) (*schema.FieldDefinition, error) {
					field.Description = "first"
					return field, nil
				},
			},
			{
				Field: func(field *schema.FieldDefinition, op *Operation, b *Builder, bc *BuildContext) (*schema.FieldDefinition, error) {
					field.Description += " second"
					return field, nil
				},
				Argument: func(arg *schema.InputValueDefinition, src *OperationArgument, b *Builder, bc *BuildContext) (*schema.InputValueDefinition, error) {
					arg.Description = "The " + src.Name + " to search for."
					return arg, nil
				},
				DirectiveArgument: func(arg *schema.InputValueDefinition, src *DirectiveArgument, b *Builder, bc *BuildContext) (*schema.InputValueDefinition, error) {
					directiveArgs = append(directiveArgs, src.Name)
					return arg, nil
				},
			},
		},
	})
	require.NoError(t, err)

	search := s.Query.Field("search")
	assert.Equal(t, "first second", search.Description)
	assert.Equal(t, "The text to search for.", search.Argument("text").Description)

	obj := s.Type("Costly").(*schema.ObjectType)
	assert.Equal(t, "first second", obj.Field("title").Description)
	assert.Equal(t, []string{"complexity"}, directiveArgs)

	t.Run("Error", func(t *testing.T) {
		_, err := Build(&Config{
			Logger:  testLogger(),
			Queries: []*Operation{query("foo", "")},
			Transformers: []Transformer{
				{
					Field: func(field *schema.FieldDefinition, op *Operation, b *Builder, bc *BuildContext) (*schema.FieldDefinition, error) {
						return nil, errors.New("boom")
					},
				},
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("Removal", func(t *testing.T) {
		_, err := Build(&Config{
			Logger:  testLogger(),
			Queries: []*Operation{query("foo", "")},
			Transformers: []Transformer{
				{
					Field: func(field *schema.FieldDefinition, op *Operation, b *Builder, bc *BuildContext) (*schema.FieldDefinition, error) {
						return nil, nil
					},
				},
			},
		})
		assert.Error(t, err)
	})
}
