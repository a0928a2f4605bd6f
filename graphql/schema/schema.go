// Package schema defines the GraphQL type system elements produced by schema assembly.
//
// The set of types is closed: every Type is one of *ObjectType, *InterfaceType, *UnionType,
// *ScalarType, *EnumType, *InputObjectType, *ListType, *NonNullType or *TypeReference, and code
// consuming types is expected to switch over all of them.
package schema

import (
	"regexp"
	"strings"
)

type Type interface {
	String() string
	IsInputType() bool
	IsOutputType() bool
}

type NamedType interface {
	Type
	TypeName() string
}

type WrappedType interface {
	Type
	Unwrap() Type
}

type Argument struct {
	Name  string
	Value interface{}
}

var nameRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// IsName returns true if s is a legal GraphQL name that isn't reserved for introspection.
func IsName(s string) bool {
	return nameRegex.MatchString(s) && !strings.HasPrefix(s, "__")
}

// UnwrapType removes all list and non-null wrappers.
func UnwrapType(t Type) Type {
	for {
		if wrapped, ok := t.(WrappedType); ok {
			t = wrapped.Unwrap()
		} else {
			break
		}
	}
	return t
}

// UnwrapNonNull removes a single non-null wrapper, if present.
func UnwrapNonNull(t Type) Type {
	if nn, ok := t.(*NonNullType); ok {
		return nn.Type
	}
	return t
}

// NamedTypeName returns the name of the named type at the core of t, or an empty string if
// there is none.
func NamedTypeName(t Type) string {
	if named, ok := UnwrapType(t).(NamedType); ok {
		return named.TypeName()
	}
	return ""
}
