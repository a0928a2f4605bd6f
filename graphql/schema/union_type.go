package schema

import "fmt"

type UnionType struct {
	Name        string
	Description string
	Directives  []*Directive

	// Each entry is either an *ObjectType or a *TypeReference to one.
	MemberTypes []NamedType
}

func (d *UnionType) String() string {
	return d.Name
}

func (d *UnionType) IsInputType() bool {
	return false
}

func (d *UnionType) IsOutputType() bool {
	return true
}

func (d *UnionType) TypeName() string {
	return d.Name
}

func (d *UnionType) shallowValidate() error {
	if len(d.MemberTypes) == 0 {
		return fmt.Errorf("%v must have at least one member type", d.Name)
	}
	objNames := map[string]struct{}{}
	for _, member := range d.MemberTypes {
		if _, ok := objNames[member.TypeName()]; ok {
			return fmt.Errorf("union member types must be unique")
		}
		objNames[member.TypeName()] = struct{}{}
	}
	return nil
}
