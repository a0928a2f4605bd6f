package schemafu

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

func constant(v interface{}) []*Resolver {
	return []*Resolver{
		{
			Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
				return v, nil
			},
		},
	}
}

func query(name string, v interface{}) *Operation {
	return &Operation{
		Name:      name,
		Type:      reflect.TypeOf(v),
		Resolvers: constant(v),
	}
}

func testLogger() logrus.FieldLogger {
	logger, _ := test.NewNullLogger()
	return logger
}

type testAuthor struct {
	Name  string
	Books []*testBook
}

func (testAuthor) GraphQLTypeName() string { return "Author" }

type testBook struct {
	Title  string
	Author *testAuthor `description:"The book's author."`
}

func (testBook) GraphQLTypeName() string { return "Book" }

func TestBuild_Cycles(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			query("book", &testBook{}),
			query("author", testAuthor{}),
		},
	})
	require.NoError(t, err)

	book, ok := s.Type("Book").(*schema.ObjectType)
	require.True(t, ok)
	author, ok := s.Type("Author").(*schema.ObjectType)
	require.True(t, ok)

	assert.Same(t, book, s.Query.Field("book").Type)
	assert.Equal(t, "Author!", s.Query.Field("author").Type.String())
	assert.Same(t, author, book.Field("author").Type)
	assert.Equal(t, "The book's author.", book.Field("author").Description)
	assert.Equal(t, "[Book]", author.Field("books").Type.String())
	assert.Same(t, book, schema.UnwrapType(author.Field("books").Type), spew.Sdump(author.Field("books").Type))

	for _, name := range []string{"Book", "Author"} {
		n := 0
		for _, typ := range s.Types {
			if typ.TypeName() == name {
				n++
			}
		}
		assert.Equal(t, 1, n, name)
	}
}

func TestBuild_SharedInstances(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			query("book", &testBook{}),
			query("books", []testBook{}),
			query("author", &testAuthor{}),
		},
	})
	require.NoError(t, err)

	book := s.Type("Book")
	require.NotNil(t, book)
	assert.Same(t, book, schema.UnwrapType(s.Query.Field("book").Type))
	assert.Same(t, book, schema.UnwrapType(s.Query.Field("books").Type))

	author, ok := s.Type("Author").(*schema.ObjectType)
	require.True(t, ok)
	assert.Same(t, book, schema.UnwrapType(author.Field("books").Type))
}

type thingA struct {
	X int
}

func (thingA) GraphQLTypeName() string { return "Thing" }

type thingB struct {
	X int
}

func (thingB) GraphQLTypeName() string { return "Thing" }

type collapsedA struct {
	Name string
	Age  int
}

func (collapsedA) GraphQLTypeName() string { return "Collapsed" }

type collapsedB struct {
	Age  int
	Name string
}

func (collapsedB) GraphQLTypeName() string { return "Collapsed" }

type thingC struct {
	Y string
}

func (thingC) GraphQLTypeName() string { return "Thing" }

func TestBuild_Uniqueness(t *testing.T) {
	t.Run("SameShape", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		s, err := Build(&Config{
			Logger: logger,
			Queries: []*Operation{
				query("a", thingA{}),
				query("b", &thingB{}),
			},
		})
		require.NoError(t, err)
		assert.Same(t, schema.UnwrapType(s.Query.Field("a").Type), schema.UnwrapType(s.Query.Field("b").Type))

		warned := false
		for _, entry := range hook.AllEntries() {
			if entry.Level == logrus.WarnLevel && entry.Data["type"] == "Thing" {
				warned = true
			}
		}
		assert.True(t, warned)

		// Resolvers of the discarded definition must not be registered twice.
		assert.NotNil(t, s.Resolver("Thing", "x"))
	})

	t.Run("SwappedFields", func(t *testing.T) {
		s, err := Build(&Config{
			Logger: testLogger(),
			Queries: []*Operation{
				query("a", collapsedA{}),
				query("b", collapsedB{}),
			},
			Fields: map[reflect.Type][]*Operation{
				reflect.TypeOf(collapsedA{}): {query("source", "a")},
				reflect.TypeOf(collapsedB{}): {query("source", "b")},
			},
		})
		require.NoError(t, err)

		for name, tc := range map[string]struct {
			Object interface{}
			Field  string
			Value  interface{}
		}{
			"FirstName":    {collapsedA{Name: "rex", Age: 3}, "name", "rex"},
			"FirstAge":     {&collapsedA{Name: "rex", Age: 3}, "age", 3},
			"SecondName":   {collapsedB{Age: 3, Name: "rex"}, "name", "rex"},
			"SecondAge":    {&collapsedB{Age: 3, Name: "rex"}, "age", 3},
			"FirstSource":  {collapsedA{}, "source", "a"},
			"SecondSource": {collapsedB{}, "source", "b"},
		} {
			t.Run(name, func(t *testing.T) {
				v, err := s.Resolver("Collapsed", tc.Field)(&schema.ResolveEnv{
					Object: tc.Object,
				})
				require.NoError(t, err)
				assert.Equal(t, tc.Value, v)
			})
		}
	})

	t.Run("DifferentShape", func(t *testing.T) {
		_, err := Build(&Config{
			Logger: testLogger(),
			Queries: []*Operation{
				query("a", thingA{}),
				query("c", thingC{}),
			},
		})
		require.Error(t, err)
		var merr *MappingError
		assert.True(t, errors.As(err, &merr))
	})
}

type testStatus string

func (testStatus) EnumValues() []string {
	return []string{"ACTIVE", "INACTIVE"}
}

type testWidget struct {
	Name   string
	Status testStatus
	Secret string `graphql:"-"`
	Size   *int   `graphql:"widgetSize" deprecated:"Use dimensions."`
}

func TestBuild_Objects(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			query("widget", testWidget{}),
		},
	})
	require.NoError(t, err)

	widget, ok := s.Type("TestWidget").(*schema.ObjectType)
	require.True(t, ok)
	assert.Nil(t, widget.Field("secret"))
	assert.Equal(t, "String!", widget.Field("name").Type.String())
	assert.Equal(t, "Int", widget.Field("widgetSize").Type.String())
	assert.Equal(t, "Use dimensions.", widget.Field("widgetSize").DeprecationReason)

	status, ok := s.Type("TestStatus").(*schema.EnumType)
	require.True(t, ok)
	require.Len(t, status.Values, 2)
	assert.Equal(t, "ACTIVE", status.Values[0].Name)

	v, err := s.Resolver("TestWidget", "name")(&schema.ResolveEnv{
		Object: &testWidget{Name: "foo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "foo", v)
}

type testPet interface {
	PetName() string
}

type testDog struct {
	Barks bool
}

func (testDog) PetName() string { return "dog" }

type testCat struct {
	Lives int
}

func (*testCat) PetName() string { return "cat" }

var testPetType = reflect.TypeOf((*testPet)(nil)).Elem()

func TestBuild_Interfaces(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Types: []reflect.Type{
			testPetType,
			reflect.TypeOf(testDog{}),
			reflect.TypeOf(testCat{}),
		},
		Queries: []*Operation{
			{
				Name:      "pets",
				Type:      reflect.TypeOf([]testPet{}),
				Resolvers: constant([]testPet{testDog{}, &testCat{}}),
			},
		},
	})
	require.NoError(t, err)

	pet, ok := s.Type("TestPet").(*schema.InterfaceType)
	require.True(t, ok)
	assert.Equal(t, "String!", pet.Field("petName").Type.String())
	assert.Equal(t, "[TestPet]", s.Query.Field("pets").Type.String())

	for _, name := range []string{"TestDog", "TestCat"} {
		obj, ok := s.Type(name).(*schema.ObjectType)
		require.True(t, ok, name)
		assert.True(t, obj.Implements("TestPet"), name)
		assert.Same(t, pet, obj.ImplementedInterfaces[0], name)
		assert.NotNil(t, obj.Field("petName"), name)
	}

	v, err := s.Resolver("TestCat", "petName")(&schema.ResolveEnv{
		Object: &testCat{},
	})
	require.NoError(t, err)
	assert.Equal(t, "cat", v)
}

func TestBuild_InterfaceDiscoveredLate(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Types: []reflect.Type{
			reflect.TypeOf(testDog{}),
		},
		Queries: []*Operation{
			query("dog", testDog{}),
			{
				Name:      "pet",
				Type:      testPetType,
				Resolvers: constant(testDog{}),
			},
		},
	})
	require.NoError(t, err)

	pet, ok := s.Type("TestPet").(*schema.InterfaceType)
	require.True(t, ok)
	dog, ok := s.Type("TestDog").(*schema.ObjectType)
	require.True(t, ok)
	assert.Same(t, dog, schema.UnwrapType(s.Query.Field("dog").Type))
	require.Len(t, dog.ImplementedInterfaces, 1)
	assert.Same(t, pet, dog.ImplementedInterfaces[0])
	assert.Equal(t, "String!", dog.Field("petName").Type.String())

	v, err := s.Resolver("TestDog", "petName")(&schema.ResolveEnv{
		Object: testDog{},
	})
	require.NoError(t, err)
	assert.Equal(t, "dog", v)
}

type testUnavailable struct {
	X int
}

type unresolvedMapper struct{}

func (unresolvedMapper) Supports(t reflect.Type) bool {
	return t == reflect.TypeOf(testUnavailable{})
}

func (unresolvedMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return &schema.TypeReference{Name: "Unavailable"}, nil
}

func (unresolvedMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return nil, env.Errorf("not supported")
}

func TestBuild_Errors(t *testing.T) {
	for name, cfg := range map[string]*Config{
		"DuplicateResolver": {
			Queries: []*Operation{
				query("a", 1),
				query("a", 2),
			},
		},
		"UnresolvedReference": {
			TypeMappers: []TypeMapper{unresolvedMapper{}},
			Queries: []*Operation{
				query("a", testUnavailable{}),
			},
		},
		"NoMapper": {
			Queries: []*Operation{
				query("a", make(chan int)),
			},
		},
		"NoResolvers": {
			Queries: []*Operation{
				{Name: "a", Type: reflect.TypeOf("")},
			},
		},
		"AnonymousStruct": {
			Queries: []*Operation{
				query("a", struct{ X int }{}),
			},
		},
		"UnionInput": {
			Queries: []*Operation{
				{
					Name:      "a",
					Type:      reflect.TypeOf(""),
					Resolvers: constant(""),
					Arguments: []*OperationArgument{
						{Name: "x", Type: reflect.TypeOf((*testSearchResult)(nil)).Elem()},
					},
				},
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg.Logger = testLogger()
			_, err := Build(cfg)
			assert.Error(t, err)
		})
	}
}

func TestBuild_RootNames(t *testing.T) {
	s, err := Build(&Config{
		Logger:       testLogger(),
		QueryRoot:    "RootQuery",
		MutationRoot: "RootMutation",
		Queries: []*Operation{
			query("a", 1),
		},
		Mutations: []*Operation{
			query("b", true),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "RootQuery", s.Query.Name)
	assert.Equal(t, "RootMutation", s.Mutation.Name)
	assert.Nil(t, s.Subscription)
	assert.NotNil(t, s.Resolver("RootMutation", "b"))
}

func TestBuild_Arguments(t *testing.T) {
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			{
				Name: "widgets",
				Type: reflect.TypeOf([]testWidget{}),
				Arguments: []*OperationArgument{
					{Name: "status", Type: reflect.TypeOf(testStatus("")), DefaultValue: Default("ACTIVE")},
					{Name: "limit", Type: reflect.TypeOf((*int)(nil)), DefaultValue: Default(nil)},
					{Name: "viewer", Type: reflect.TypeOf(""), Internal: true},
				},
				Resolvers: constant([]testWidget{}),
			},
		},
	})
	require.NoError(t, err)

	field := s.Query.Field("widgets")
	require.Len(t, field.Arguments, 2)
	assert.Equal(t, "TestStatus!", field.Argument("status").Type.String())
	assert.Equal(t, "ACTIVE", field.Argument("status").DefaultValue)
	assert.Equal(t, schema.Null, field.Argument("limit").DefaultValue)
	assert.Nil(t, field.Argument("viewer"))
}

type testFilter struct {
	Title string
	Limit int `default:"10"`
}

func TestBuild_InputObjects(t *testing.T) {
	var got testFilter
	s, err := Build(&Config{
		Logger: testLogger(),
		Queries: []*Operation{
			{
				Name: "search",
				Type: reflect.TypeOf(""),
				Arguments: []*OperationArgument{
					{Name: "filter", Type: reflect.TypeOf(testFilter{})},
				},
				Resolvers: []*Resolver{
					{
						Arguments: []string{"filter"},
						Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
							got = env.Argument("filter").(testFilter)
							return got.Title, nil
						},
					},
				},
			},
		},
	})
	require.NoError(t, err)

	input, ok := s.Type("TestFilterInput").(*schema.InputObjectType)
	require.True(t, ok)
	assert.Equal(t, "String!", input.Field("title").Type.String())
	assert.Equal(t, float64(10), input.Field("limit").DefaultValue)

	v, err := s.Resolver("Query", "search")(&schema.ResolveEnv{
		Arguments: map[string]interface{}{
			"filter": map[string]interface{}{
				"title": "foo",
				"limit": 3,
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "foo", v)
	assert.Equal(t, testFilter{Title: "foo", Limit: 3}, got)
}
