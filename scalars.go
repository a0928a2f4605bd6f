package schemafu

import (
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// ID is mapped to the built-in ID scalar.
type ID string

var DateTimeType = &schema.ScalarType{
	Name:        "DateTime",
	Description: "DateTime represents an RFC-3339 datetime.",
}

var UUIDType = &schema.ScalarType{
	Name:        "UUID",
	Description: "UUID represents an RFC-4122 universally unique identifier.",
}

var (
	idType       = reflect.TypeOf(ID(""))
	timeType     = reflect.TypeOf(time.Time{})
	uuidType     = reflect.TypeOf(uuid.UUID{})
	durationType = reflect.TypeOf(time.Duration(0))
)

// builtinScalar returns the scalar a Go type maps to without any configuration, or nil.
func builtinScalar(t reflect.Type) *schema.ScalarType {
	switch t {
	case idType:
		return schema.IDType
	case timeType:
		return DateTimeType
	case uuidType:
		return UUIDType
	case durationType:
		return schema.IntType
	}
	switch t.Kind() {
	case reflect.Bool:
		return schema.BooleanType
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return schema.IntType
	case reflect.Float32, reflect.Float64:
		return schema.FloatType
	case reflect.String:
		if isEnum(t) {
			return nil
		}
		return schema.StringType
	}
	return nil
}
