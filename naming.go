package schemafu

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// TypeNamer can be implemented by Go types to override the name of the GraphQL type they map to.
// Multiple Go types may share a name as long as they map to identical definitions.
type TypeNamer interface {
	GraphQLTypeName() string
}

// Describer can be implemented by Go types to give their GraphQL type a description.
type Describer interface {
	GraphQLDescription() string
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// zeroPointer returns a pointer to a zero value of t, which has both the value and pointer method
// sets of t.
func zeroPointer(t reflect.Type) interface{} {
	return reflect.New(t).Interface()
}

// TypeName returns the name of the GraphQL type t maps to, or an empty string for unnamed types.
// Type parameters of generic types are dropped.
func TypeName(t reflect.Type) string {
	t = indirect(t)
	if t.Kind() != reflect.Interface {
		if namer, ok := zeroPointer(t).(TypeNamer); ok {
			return namer.GraphQLTypeName()
		}
	}
	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	if name == "" {
		return ""
	}
	return inflect.Capitalize(name)
}

func typeDescription(t reflect.Type) string {
	t = indirect(t)
	if t.Kind() != reflect.Interface {
		if d, ok := zeroPointer(t).(Describer); ok {
			return d.GraphQLDescription()
		}
	}
	return ""
}

// FieldName converts a Go identifier to a GraphQL field name. FirstName becomes firstName, and
// leading initialisms are lowered entirely, so ID becomes id and URLPath becomes urlPath.
func FieldName(goName string) string {
	runes := []rune(goName)
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	if upper <= 1 {
		return inflect.CamelizeDownFirst(goName)
	}
	if upper < len(runes) {
		upper--
	}
	return strings.ToLower(string(runes[:upper])) + string(runes[upper:])
}

// DirectiveName returns the default name of a directive defined by a Go type.
func DirectiveName(t reflect.Type) string {
	return FieldName(indirect(t).Name())
}

func relayTypeName(fieldName, suffix string) string {
	return inflect.Capitalize(fieldName) + suffix
}
