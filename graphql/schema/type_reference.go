package schema

// TypeReference stands in for a named type that is still being built. References are replaced
// with the completed type by ReplaceTypeReferences once assembly finishes.
type TypeReference struct {
	Name string

	// Input is true if the referenced type is used in an input position.
	Input bool
}

func (t *TypeReference) String() string {
	return t.Name
}

func (t *TypeReference) IsInputType() bool {
	return t.Input
}

func (t *TypeReference) IsOutputType() bool {
	return !t.Input
}

func (t *TypeReference) TypeName() string {
	return t.Name
}
