package schemafu

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ccbrown/schema-fu/relay"
)

func TestFieldName(t *testing.T) {
	for in, expected := range map[string]string{
		"Title":           "title",
		"FirstName":       "firstName",
		"HasPreviousPage": "hasPreviousPage",
		"ID":              "id",
		"URL":             "url",
		"URLPath":         "urlPath",
		"HTTPServer":      "httpServer",
	} {
		assert.Equal(t, expected, FieldName(in), in)
	}
}

func TestTypeName(t *testing.T) {
	for name, tc := range map[string]struct {
		Type     reflect.Type
		Expected string
	}{
		"Struct": {
			Type:     reflect.TypeOf(testWidget{}),
			Expected: "TestWidget",
		},
		"Pointer": {
			Type:     reflect.TypeOf(&testWidget{}),
			Expected: "TestWidget",
		},
		"Namer": {
			Type:     reflect.TypeOf(&testBook{}),
			Expected: "Book",
		},
		"Generic": {
			Type:     reflect.TypeOf(relay.Connection[testPost]{}),
			Expected: "Connection",
		},
		"Unnamed": {
			Type:     reflect.TypeOf([]int{}),
			Expected: "",
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, TypeName(tc.Type))
		})
	}
}

func TestDirectiveName(t *testing.T) {
	assert.Equal(t, "testCacheControl", DirectiveName(reflect.TypeOf(&testCacheControl{})))
}
