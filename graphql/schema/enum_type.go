package schema

import "fmt"

type EnumType struct {
	Name        string
	Description string
	Directives  []*Directive
	Values      []*EnumValueDefinition
}

type EnumValueDefinition struct {
	Name              string
	Description       string
	Directives        []*Directive
	DeprecationReason string
}

func (t *EnumType) String() string {
	return t.Name
}

func (t *EnumType) IsInputType() bool {
	return true
}

func (t *EnumType) IsOutputType() bool {
	return true
}

func (t *EnumType) TypeName() string {
	return t.Name
}

func (d *EnumType) shallowValidate() error {
	if len(d.Values) == 0 {
		return fmt.Errorf("%v must have at least one value", d.Name)
	}
	for _, v := range d.Values {
		if !IsName(v.Name) || v.Name == "true" || v.Name == "false" || v.Name == "null" {
			return fmt.Errorf("illegal enum value: %v", v.Name)
		}
	}
	return nil
}

func IsEnumType(t Type) bool {
	_, ok := t.(*EnumType)
	return ok
}
