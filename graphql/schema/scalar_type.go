package schema

type ScalarType struct {
	Name        string
	Description string
	Directives  []*Directive
}

func (t *ScalarType) String() string {
	return t.Name
}

func (t *ScalarType) IsInputType() bool {
	return true
}

func (t *ScalarType) IsOutputType() bool {
	return true
}

func (t *ScalarType) TypeName() string {
	return t.Name
}

func IsScalarType(t Type) bool {
	_, ok := t.(*ScalarType)
	return ok
}
