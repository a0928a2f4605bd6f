package schema

import "fmt"

type InterfaceType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      []*FieldDefinition
}

func (t *InterfaceType) String() string {
	return t.Name
}

func (t *InterfaceType) IsInputType() bool {
	return false
}

func (t *InterfaceType) IsOutputType() bool {
	return true
}

func (t *InterfaceType) TypeName() string {
	return t.Name
}

// Field returns the field with the given name or nil.
func (t *InterfaceType) Field(name string) *FieldDefinition {
	return fieldByName(t.Fields, name)
}

func (t *InterfaceType) shallowValidate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", t.Name)
	}
	return validateFields(t.Fields)
}
