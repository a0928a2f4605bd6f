package schema

import "fmt"

// InputValueDefinition defines an input value such as an argument or an input object field.
type InputValueDefinition struct {
	Name        string
	Description string
	Type        Type

	// For null, set this to Null. A nil DefaultValue means there is no default.
	DefaultValue interface{}

	Directives []*Directive
}

type explicitNull struct{}

// Null is to specify an explicit "null" default for input values.
var Null = (*explicitNull)(nil)

// HasDefaultValue returns true if the input value has a default, including an explicit null.
func (d *InputValueDefinition) HasDefaultValue() bool {
	// Null is a typed nil, so it compares unequal to an untyped nil interface.
	return d.DefaultValue != nil
}

func (d *InputValueDefinition) shallowValidate() error {
	if d.Type == nil {
		return fmt.Errorf("input value is missing type")
	} else if !d.Type.IsInputType() {
		return fmt.Errorf("%v cannot be used as an input value type", d.Type)
	}
	return nil
}

func inputValueByName(values []*InputValueDefinition, name string) *InputValueDefinition {
	for _, v := range values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func validateInputValues(values []*InputValueDefinition) error {
	seen := map[string]struct{}{}
	for _, v := range values {
		if !IsName(v.Name) {
			return fmt.Errorf("illegal input value name: %v", v.Name)
		} else if _, ok := seen[v.Name]; ok {
			return fmt.Errorf("duplicate input value name: %v", v.Name)
		} else if err := v.shallowValidate(); err != nil {
			return fmt.Errorf("%v: %v", v.Name, err)
		}
		seen[v.Name] = struct{}{}
	}
	return nil
}
