package schema

import (
	"fmt"
)

// FieldDefinition defines an object or interface field.
type FieldDefinition struct {
	Name              string
	Description       string
	Arguments         []*InputValueDefinition
	Type              Type
	Directives        []*Directive
	DeprecationReason string
}

// Argument returns the argument with the given name or nil.
func (d *FieldDefinition) Argument(name string) *InputValueDefinition {
	return inputValueByName(d.Arguments, name)
}

func (d *FieldDefinition) shallowValidate() error {
	if d.Type == nil {
		return fmt.Errorf("field is missing type")
	} else if !d.Type.IsOutputType() {
		return fmt.Errorf("%v cannot be used as a field type", d.Type)
	}
	return validateInputValues(d.Arguments)
}
