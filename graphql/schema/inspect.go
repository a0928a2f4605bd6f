package schema

import (
	"fmt"
	"reflect"
)

// Inspect traverses the element graph in depth-first order, calling f for each node. If f returns
// false, the node's children are skipped. After the children of a node are visited, f(nil) is
// called.
//
// The graph may be cyclic, so f is responsible for not descending into nodes it has already seen.
func Inspect(node interface{}, f func(interface{}) bool) {
	if node == nil || reflect.ValueOf(node).IsNil() || !f(node) {
		return
	}

	switch n := node.(type) {
	case *UnionType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.MemberTypes {
			Inspect(node, f)
		}
	case *InterfaceType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *InputObjectType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
	case *ObjectType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
		for _, node := range n.Fields {
			Inspect(node, f)
		}
		for _, node := range n.ImplementedInterfaces {
			Inspect(node, f)
		}
	case *FieldDefinition:
		Inspect(n.Type, f)
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *InputValueDefinition:
		Inspect(n.Type, f)
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *DirectiveDefinition:
		for _, node := range n.Arguments {
			Inspect(node, f)
		}
	case *Directive:
		Inspect(n.Definition, f)
	case *EnumType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *ScalarType:
		for _, node := range n.Directives {
			Inspect(node, f)
		}
	case *ListType:
		Inspect(n.Type, f)
	case *NonNullType:
		Inspect(n.Type, f)
	case *TypeReference:
	default:
		panic(fmt.Errorf("unknown node type: %T", n))
	}

	f(nil)
}

// Validate checks every element reachable from the given nodes. Unresolved type references and
// conflicting definitions for a single type name are reported as errors.
func Validate(nodes ...interface{}) error {
	var err error
	visited := map[interface{}]struct{}{}
	namedTypes := map[string]NamedType{}
	directives := map[string]*DirectiveDefinition{}

	for _, node := range nodes {
		Inspect(node, func(node interface{}) bool {
			if err != nil || node == nil {
				return false
			}
			if _, ok := visited[node]; ok {
				return false
			}
			visited[node] = struct{}{}

			switch n := node.(type) {
			case *TypeReference:
				err = fmt.Errorf("unresolved type reference: %v", n.Name)
			case NamedType:
				name := n.TypeName()
				if !IsName(name) {
					err = fmt.Errorf("illegal type name: %v", name)
				} else if existing, ok := namedTypes[name]; ok && existing != n {
					err = fmt.Errorf("multiple definitions for named type: %v", name)
				} else if builtin, ok := builtins[name]; ok && n != NamedType(builtin) {
					err = fmt.Errorf("%v builtin may not be overridden", name)
				} else {
					namedTypes[name] = n
				}
			case *DirectiveDefinition:
				if existing, ok := directives[n.Name]; ok && existing != n {
					err = fmt.Errorf("multiple definitions for directive: %v", n.Name)
				} else {
					directives[n.Name] = n
				}
			}

			if err == nil {
				if n, ok := node.(interface {
					shallowValidate() error
				}); ok {
					err = n.shallowValidate()
				}
			}

			return err == nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
