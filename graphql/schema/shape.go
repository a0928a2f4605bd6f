package schema

import (
	"sort"
	"strings"
)

// Shape returns a structural fingerprint of a named type. Two definitions with the same shape are
// interchangeable in a schema. Referenced types contribute only their names, so shapes of cyclic
// type graphs are well-defined.
//
// Descriptions and directives are not part of the shape.
func Shape(t NamedType) string {
	var b strings.Builder
	switch t := t.(type) {
	case *ObjectType:
		b.WriteString("type " + t.Name)
		var ifaces []string
		for _, iface := range t.ImplementedInterfaces {
			ifaces = append(ifaces, iface.TypeName())
		}
		sort.Strings(ifaces)
		if len(ifaces) > 0 {
			b.WriteString(" implements " + strings.Join(ifaces, " & "))
		}
		writeFieldShapes(&b, t.Fields)
	case *InterfaceType:
		b.WriteString("interface " + t.Name)
		writeFieldShapes(&b, t.Fields)
	case *UnionType:
		var members []string
		for _, member := range t.MemberTypes {
			members = append(members, member.TypeName())
		}
		sort.Strings(members)
		b.WriteString("union " + t.Name + " = " + strings.Join(members, " | "))
	case *EnumType:
		var values []string
		for _, v := range t.Values {
			values = append(values, v.Name)
		}
		sort.Strings(values)
		b.WriteString("enum " + t.Name + " {" + strings.Join(values, " ") + "}")
	case *InputObjectType:
		b.WriteString("input " + t.Name + " {")
		b.WriteString(strings.Join(inputValueShapes(t.Fields), " "))
		b.WriteString("}")
	case *ScalarType:
		b.WriteString("scalar " + t.Name)
	case *TypeReference:
		b.WriteString("ref " + t.Name)
	}
	return b.String()
}

func writeFieldShapes(b *strings.Builder, fields []*FieldDefinition) {
	shapes := make([]string, 0, len(fields))
	for _, f := range fields {
		s := f.Name
		if len(f.Arguments) > 0 {
			s += "(" + strings.Join(inputValueShapes(f.Arguments), " ") + ")"
		}
		shapes = append(shapes, s+": "+f.Type.String())
	}
	sort.Strings(shapes)
	b.WriteString(" {" + strings.Join(shapes, " ") + "}")
}

func inputValueShapes(values []*InputValueDefinition) []string {
	shapes := make([]string, 0, len(values))
	for _, v := range values {
		shapes = append(shapes, v.Name+": "+v.Type.String())
	}
	sort.Strings(shapes)
	return shapes
}
