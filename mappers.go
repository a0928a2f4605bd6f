package schemafu

import (
	"reflect"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// NonNullMapper maps values of Go types that can't be nil to non-null types.
type NonNullMapper struct{}

func (m *NonNullMapper) Supports(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String, reflect.Struct, reflect.Array,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func (m *NonNullMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	inner, err := env.Builder.MapOutputTypeWithSkip(t, skip.With(m), env)
	if err != nil {
		return nil, err
	}
	return nonNull(inner), nil
}

func (m *NonNullMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	inner, err := env.Builder.MapInputTypeWithSkip(t, skip.With(m), env)
	if err != nil {
		return nil, err
	}
	return nonNull(inner), nil
}

func nonNull(t schema.Type) schema.Type {
	if schema.IsNonNullType(t) {
		return t
	}
	return schema.NewNonNullType(t)
}

// PointerMapper maps pointers to the nullable type of their element.
type PointerMapper struct{}

var skipNonNull = NewMapperSet((*NonNullMapper)(nil))

func (m *PointerMapper) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr
}

func (m *PointerMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return env.Builder.MapOutputTypeWithSkip(t.Elem(), skipNonNull, env)
}

func (m *PointerMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return env.Builder.MapInputTypeWithSkip(t.Elem(), skipNonNull, env)
}

// ScalarMapper maps Go booleans, numbers, and strings to the built-in scalars, time.Time to
// DateTime, uuid.UUID to UUID, and ID to ID. Scalars can be overridden for any Go type.
type ScalarMapper struct {
	Scalars map[reflect.Type]*schema.ScalarType
}

func (m *ScalarMapper) scalar(t reflect.Type) *schema.ScalarType {
	if s, ok := m.Scalars[t]; ok {
		return s
	}
	return builtinScalar(t)
}

func (m *ScalarMapper) Supports(t reflect.Type) bool {
	return m.scalar(t) != nil
}

func (m *ScalarMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return m.scalar(t), nil
}

func (m *ScalarMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return m.scalar(t), nil
}

// Enum is implemented by Go string types that should be mapped to enums.
type Enum interface {
	EnumValues() []string
}

var enumType = reflect.TypeOf((*Enum)(nil)).Elem()

func isEnum(t reflect.Type) bool {
	return t.Kind() == reflect.String && implements(t, enumType)
}

// EnumMapper maps Go string types implementing Enum to enums.
type EnumMapper struct{}

func (m *EnumMapper) Supports(t reflect.Type) bool {
	return isEnum(t)
}

func (m *EnumMapper) mapEnum(t reflect.Type, env *MappingEnvironment) (schema.Type, error) {
	name := TypeName(t)
	return env.Cached(name, t, func() (schema.NamedType, error) {
		enum := &schema.EnumType{
			Name:        name,
			Description: typeDescription(t),
		}
		for _, v := range zeroPointer(t).(Enum).EnumValues() {
			enum.Values = append(enum.Values, &schema.EnumValueDefinition{
				Name: v,
			})
		}
		if len(enum.Values) == 0 {
			return nil, env.Errorf("enum %v has no values", name)
		}
		return enum, nil
	})
}

func (m *EnumMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return m.mapEnum(t, env)
}

func (m *EnumMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return m.mapEnum(t, env)
}

// ListMapper maps slices and arrays to lists.
type ListMapper struct{}

func (m *ListMapper) Supports(t reflect.Type) bool {
	return t.Kind() == reflect.Slice || t.Kind() == reflect.Array
}

func (m *ListMapper) MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	elem, err := env.Builder.MapOutputType(t.Elem(), env)
	if err != nil {
		return nil, err
	}
	return schema.NewListType(elem), nil
}

func (m *ListMapper) MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	elem, err := env.Builder.MapInputType(t.Elem(), env)
	if err != nil {
		return nil, err
	}
	return schema.NewListType(elem), nil
}
