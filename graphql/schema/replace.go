package schema

import (
	"fmt"
	"reflect"
)

// ReplaceTypeReferences replaces every *TypeReference reachable from the given nodes with the
// type returned by resolve. The element graph is modified in place.
func ReplaceTypeReferences(resolve func(name string) (NamedType, bool), nodes ...interface{}) error {
	r := &referenceReplacer{
		resolve: resolve,
		visited: map[interface{}]struct{}{},
	}
	for _, node := range nodes {
		if err := r.replaceNode(node); err != nil {
			return err
		}
	}
	return nil
}

type referenceReplacer struct {
	resolve func(name string) (NamedType, bool)
	visited map[interface{}]struct{}
}

func (r *referenceReplacer) named(t NamedType) (NamedType, error) {
	if ref, ok := t.(*TypeReference); ok {
		resolved, ok := r.resolve(ref.Name)
		if !ok {
			return nil, fmt.Errorf("unresolved type reference: %v", ref.Name)
		}
		return resolved, r.replaceNode(resolved)
	}
	return t, r.replaceNode(t)
}

func (r *referenceReplacer) typ(t Type) (Type, error) {
	switch t := t.(type) {
	case *ListType:
		inner, err := r.typ(t.Type)
		if err != nil {
			return nil, err
		}
		t.Type = inner
		return t, nil
	case *NonNullType:
		inner, err := r.typ(t.Type)
		if err != nil {
			return nil, err
		}
		t.Type = inner
		return t, nil
	case NamedType:
		return r.named(t)
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("unknown type: %T", t)
}

func (r *referenceReplacer) fields(fields []*FieldDefinition) error {
	for _, f := range fields {
		if err := r.replaceNode(f); err != nil {
			return err
		}
	}
	return nil
}

func (r *referenceReplacer) inputValues(values []*InputValueDefinition) error {
	for _, v := range values {
		if err := r.replaceNode(v); err != nil {
			return err
		}
	}
	return nil
}

func (r *referenceReplacer) directives(directives []*Directive) error {
	for _, d := range directives {
		if err := r.replaceNode(d.Definition); err != nil {
			return err
		}
	}
	return nil
}

func (r *referenceReplacer) replaceNode(node interface{}) error {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}
	if _, ok := node.(*TypeReference); ok {
		return nil
	}
	if _, ok := r.visited[node]; ok {
		return nil
	}
	r.visited[node] = struct{}{}

	var err error
	switch n := node.(type) {
	case *ObjectType:
		for i, iface := range n.ImplementedInterfaces {
			if n.ImplementedInterfaces[i], err = r.named(iface); err != nil {
				return err
			}
		}
		if err = r.fields(n.Fields); err == nil {
			err = r.directives(n.Directives)
		}
	case *InterfaceType:
		if err = r.fields(n.Fields); err == nil {
			err = r.directives(n.Directives)
		}
	case *UnionType:
		for i, member := range n.MemberTypes {
			if n.MemberTypes[i], err = r.named(member); err != nil {
				return err
			}
		}
		err = r.directives(n.Directives)
	case *InputObjectType:
		if err = r.inputValues(n.Fields); err == nil {
			err = r.directives(n.Directives)
		}
	case *FieldDefinition:
		if n.Type, err = r.typ(n.Type); err == nil {
			if err = r.inputValues(n.Arguments); err == nil {
				err = r.directives(n.Directives)
			}
		}
	case *InputValueDefinition:
		if n.Type, err = r.typ(n.Type); err == nil {
			err = r.directives(n.Directives)
		}
	case *DirectiveDefinition:
		err = r.inputValues(n.Arguments)
	case *Directive:
		err = r.replaceNode(n.Definition)
	case *EnumType:
		err = r.directives(n.Directives)
	case *ScalarType:
		err = r.directives(n.Directives)
	default:
		err = fmt.Errorf("unknown node type: %T", n)
	}
	return err
}
