package schemafu

import (
	"reflect"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// TypeMapper is a strategy for mapping Go types to schema types. Mappers may call back into the
// environment's Builder to map nested types.
type TypeMapper interface {
	Supports(t reflect.Type) bool
	MapOutput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error)
	MapInput(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error)
}

// MapperSet is a set of mappers, identified by their Go types.
type MapperSet map[reflect.Type]struct{}

func NewMapperSet(mappers ...TypeMapper) MapperSet {
	ret := MapperSet{}
	for _, m := range mappers {
		ret[reflect.TypeOf(m)] = struct{}{}
	}
	return ret
}

// With returns a copy of the set including m.
func (s MapperSet) With(m TypeMapper) MapperSet {
	ret := make(MapperSet, len(s)+1)
	for k := range s {
		ret[k] = struct{}{}
	}
	ret[reflect.TypeOf(m)] = struct{}{}
	return ret
}

func (s MapperSet) Contains(m TypeMapper) bool {
	_, ok := s[reflect.TypeOf(m)]
	return ok
}

// TypeMappers is an ordered list of mappers. The first mapper supporting a type is used.
type TypeMappers []TypeMapper

// Select returns the first mapper that supports t and isn't in skip.
func (m TypeMappers) Select(element *TypedElement, t reflect.Type, skip MapperSet) (TypeMapper, error) {
	for _, mapper := range m {
		if !skip.Contains(mapper) && mapper.Supports(t) {
			return mapper, nil
		}
	}
	return nil, &MappingError{
		Element: element,
		Message: "no type mapper found for " + t.String(),
	}
}

// DefaultTypeMappers returns the built-in mappers in priority order.
func DefaultTypeMappers(scalars map[reflect.Type]*schema.ScalarType) TypeMappers {
	return TypeMappers{
		&NonNullMapper{},
		&PointerMapper{},
		&ScalarMapper{
			Scalars: scalars,
		},
		&EnumMapper{},
		&ConnectionMapper{},
		&ListMapper{},
		&UnionMapper{},
		&InterfaceMapper{},
		&ObjectMapper{},
	}
}
