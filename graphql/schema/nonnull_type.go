package schema

type NonNullType struct {
	Type Type
}

func NewNonNullType(t Type) *NonNullType {
	return &NonNullType{
		Type: t,
	}
}

func (d *NonNullType) String() string {
	return d.Type.String() + "!"
}

func (d *NonNullType) IsInputType() bool {
	return d.Type.IsInputType()
}

func (d *NonNullType) IsOutputType() bool {
	return d.Type.IsOutputType()
}

func (d *NonNullType) Unwrap() Type {
	return d.Type
}

func IsNonNullType(t Type) bool {
	_, ok := t.(*NonNullType)
	return ok
}
