package schema

var IntType = &ScalarType{
	Name: "Int",
}

var FloatType = &ScalarType{
	Name: "Float",
}

var StringType = &ScalarType{
	Name: "String",
}

var BooleanType = &ScalarType{
	Name: "Boolean",
}

var IDType = &ScalarType{
	Name: "ID",
}

var builtins = map[string]*ScalarType{
	IntType.Name:     IntType,
	FloatType.Name:   FloatType,
	StringType.Name:  StringType,
	BooleanType.Name: BooleanType,
	IDType.Name:      IDType,
}

// IsBuiltin returns true if the named type is one of the scalars every schema defines.
func IsBuiltin(t NamedType) bool {
	s, ok := t.(*ScalarType)
	return ok && builtins[s.Name] == s
}

// BuiltinType returns the built-in scalar with the given name or nil.
func BuiltinType(name string) *ScalarType {
	return builtins[name]
}
