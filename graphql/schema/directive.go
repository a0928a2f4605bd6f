package schema

import (
	"fmt"
)

type DirectiveLocation string

const (
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"

	DirectiveLocationSchema               DirectiveLocation = "SCHEMA"
	DirectiveLocationScalar               DirectiveLocation = "SCALAR"
	DirectiveLocationObject               DirectiveLocation = "OBJECT"
	DirectiveLocationFieldDefinition      DirectiveLocation = "FIELD_DEFINITION"
	DirectiveLocationArgumentDefinition   DirectiveLocation = "ARGUMENT_DEFINITION"
	DirectiveLocationInterface            DirectiveLocation = "INTERFACE"
	DirectiveLocationUnion                DirectiveLocation = "UNION"
	DirectiveLocationEnum                 DirectiveLocation = "ENUM"
	DirectiveLocationEnumValue            DirectiveLocation = "ENUM_VALUE"
	DirectiveLocationInputObject          DirectiveLocation = "INPUT_OBJECT"
	DirectiveLocationInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

type DirectiveDefinition struct {
	Name        string
	Description string
	Arguments   []*InputValueDefinition
	Locations   []DirectiveLocation
}

// Argument returns the argument with the given name or nil.
func (d *DirectiveDefinition) Argument(name string) *InputValueDefinition {
	return inputValueByName(d.Arguments, name)
}

func (d *DirectiveDefinition) shallowValidate() error {
	if !IsName(d.Name) {
		return fmt.Errorf("illegal directive name: %v", d.Name)
	} else if len(d.Locations) == 0 {
		return fmt.Errorf("directives must have one or more locations")
	}
	return validateInputValues(d.Arguments)
}

// Directive is a directive applied to a schema element.
type Directive struct {
	Definition *DirectiveDefinition
	Arguments  []*Argument
}

// Argument returns the value of the named argument and whether it was given.
func (d *Directive) Argument(name string) (interface{}, bool) {
	for _, arg := range d.Arguments {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return nil, false
}
