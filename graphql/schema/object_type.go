package schema

import (
	"fmt"
)

type ObjectType struct {
	Name        string
	Description string
	Directives  []*Directive
	Fields      []*FieldDefinition

	// Each entry is either an *InterfaceType or a *TypeReference to one.
	ImplementedInterfaces []NamedType
}

func (d *ObjectType) String() string {
	return d.Name
}

func (d *ObjectType) IsInputType() bool {
	return false
}

func (d *ObjectType) IsOutputType() bool {
	return true
}

func (d *ObjectType) TypeName() string {
	return d.Name
}

// Field returns the field with the given name or nil.
func (d *ObjectType) Field(name string) *FieldDefinition {
	return fieldByName(d.Fields, name)
}

// Implements returns true if the object declares the named interface.
func (d *ObjectType) Implements(name string) bool {
	for _, iface := range d.ImplementedInterfaces {
		if iface.TypeName() == name {
			return true
		}
	}
	return false
}

func (d *ObjectType) shallowValidate() error {
	if len(d.Fields) == 0 {
		return fmt.Errorf("%v must have at least one field", d.Name)
	}
	return validateFields(d.Fields)
}

func fieldByName(fields []*FieldDefinition, name string) *FieldDefinition {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func validateFields(fields []*FieldDefinition) error {
	seen := map[string]struct{}{}
	for _, field := range fields {
		if !IsName(field.Name) {
			return fmt.Errorf("illegal field name: %v", field.Name)
		} else if _, ok := seen[field.Name]; ok {
			return fmt.Errorf("duplicate field name: %v", field.Name)
		} else if err := field.shallowValidate(); err != nil {
			return fmt.Errorf("%v field: %v", field.Name, err)
		}
		seen[field.Name] = struct{}{}
	}
	return nil
}
