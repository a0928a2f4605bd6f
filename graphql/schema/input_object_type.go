package schema

import "fmt"

type InputObjectType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      []*InputValueDefinition
}

func (t *InputObjectType) String() string {
	return t.Name
}

func (t *InputObjectType) IsInputType() bool {
	return true
}

func (t *InputObjectType) IsOutputType() bool {
	return false
}

func (t *InputObjectType) TypeName() string {
	return t.Name
}

// Field returns the input field with the given name or nil.
func (t *InputObjectType) Field(name string) *InputValueDefinition {
	return inputValueByName(t.Fields, name)
}

func (t *InputObjectType) shallowValidate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", t.Name)
	}
	return validateInputValues(t.Fields)
}
