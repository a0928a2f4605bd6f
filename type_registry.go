package schemafu

import (
	"reflect"
	"sort"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// MappedType associates a Go type with the schema type it produced. Native is nil for types that
// were added to the schema without being mapped from Go.
type MappedType struct {
	Native reflect.Type
	Type   schema.NamedType
}

// TypeRegistry records which concrete object types are possible for each interface and union.
type TypeRegistry struct {
	cache         *TypeCache
	possibleTypes map[string][]MappedType
}

func NewTypeRegistry(cache *TypeCache) *TypeRegistry {
	return &TypeRegistry{
		cache:         cache,
		possibleTypes: map[string][]MappedType{},
	}
}

// RegisterPossibleType records a concrete type for an interface or union.
func (r *TypeRegistry) RegisterPossibleType(abstractName string, mapped MappedType) {
	for _, existing := range r.possibleTypes[abstractName] {
		if existing.Type.TypeName() == mapped.Type.TypeName() && existing.Native == mapped.Native {
			return
		}
	}
	r.possibleTypes[abstractName] = append(r.possibleTypes[abstractName], mapped)
}

// OutputTypes returns the possible types of an interface or union. References to types that have
// since been completed are resolved.
func (r *TypeRegistry) OutputTypes(abstractName string) []MappedType {
	mapped := r.possibleTypes[abstractName]
	ret := make([]MappedType, 0, len(mapped))
	for _, m := range mapped {
		if ref, ok := m.Type.(*schema.TypeReference); ok {
			if resolved, ok := r.cache.Resolve(ref.Name); ok {
				m.Type = resolved
			}
		}
		ret = append(ret, m)
	}
	return ret
}

// AbstractTypeNames returns the sorted names of all interfaces and unions with registered possible
// types.
func (r *TypeRegistry) AbstractTypeNames() []string {
	ret := make([]string, 0, len(r.possibleTypes))
	for name := range r.possibleTypes {
		ret = append(ret, name)
	}
	sort.Strings(ret)
	return ret
}
