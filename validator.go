package schemafu

import (
	"fmt"
	"reflect"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// ValidationResult is the outcome of a non-fatal check. Invalid results are logged as warnings.
type ValidationResult struct {
	Valid   bool
	Message string
}

var validResult = ValidationResult{Valid: true}

type validatorEntry struct {
	native reflect.Type
	typ    schema.NamedType
}

// Validator enforces that every type name corresponds to exactly one definition, no matter how
// many Go types are mapped to it.
type Validator struct {
	mapped map[string]validatorEntry
}

func NewValidator() *Validator {
	return &Validator{
		mapped: map[string]validatorEntry{},
	}
}

// CheckUniqueness checks a newly mapped type against the first type mapped with the same name. The
// same instance or the same Go type is always valid. A different Go type producing an identical
// definition is reported as an invalid, non-fatal result. A different definition is a
// *MappingError.
func (v *Validator) CheckUniqueness(t schema.NamedType, native reflect.Type, element *TypedElement) (ValidationResult, error) {
	if _, ok := t.(*schema.TypeReference); ok || schema.IsBuiltin(t) {
		return validResult, nil
	}
	name := t.TypeName()
	existing, ok := v.mapped[name]
	if !ok {
		v.mapped[name] = validatorEntry{
			native: native,
			typ:    t,
		}
		return validResult, nil
	}
	if existing.typ == t || (native != nil && existing.native == native) {
		return validResult, nil
	}
	if schema.Shape(existing.typ) != schema.Shape(t) {
		return ValidationResult{}, &MappingError{
			Element: element,
			Message: fmt.Sprintf("type %v is mapped from both %v and %v, which produce different definitions", name, nativeName(existing.native), nativeName(native)),
		}
	}
	return ValidationResult{
		Message: fmt.Sprintf("type %v is mapped from both %v and %v; their definitions are identical so %v will be used", name, nativeName(existing.native), nativeName(native), nativeName(existing.native)),
	}, nil
}

func nativeName(t reflect.Type) string {
	if t == nil {
		return "<generated>"
	}
	return t.String()
}
