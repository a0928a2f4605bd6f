package schemafu

import (
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// OperationSource describes the fields of Go types.
type OperationSource interface {
	// ChildQueries returns the fields of t. The interfaces are the mapped Go interfaces t implements,
	// whose methods also become fields.
	ChildQueries(t reflect.Type, interfaces []reflect.Type) ([]*Operation, error)

	// InputFields returns the fields of t when used as an input object.
	InputFields(t reflect.Type) ([]*InputField, error)
}

// Annotated can be implemented by Go types to attach annotations, typically directives, to their
// fields and methods. The keys are Go field or method names.
type Annotated interface {
	GraphQLAnnotations() map[string][]interface{}
}

// StructSource discovers fields from struct fields and interface methods. Struct fields can be
// configured with tags:
//
//	type Book struct {
//	    ID     int    `graphql:"id,relayid"`
//	    Title  string `description:"The book's title."`
//	    ISBN   string `graphql:"isbn" deprecated:"Use identifiers instead."`
//	    Secret string `graphql:"-"`
//	}
//
// Input fields can also be given a JSON default value with the "default" tag.
type StructSource struct {
	// Additional fields for Go types, typically fields that take arguments. These take precedence
	// over discovered fields of the same name.
	Fields map[reflect.Type][]*Operation
}

var _ OperationSource = (*StructSource)(nil)

// Methods that exist only to mark or describe types.
var markerMethods = map[string]struct{}{
	"GraphQLUnion":       {},
	"GraphQLTypeName":    {},
	"GraphQLDescription": {},
	"GraphQLAnnotations": {},
	"EnumValues":         {},
}

type fieldTag struct {
	name    string
	skip    bool
	relayID bool
}

func parseFieldTag(sf reflect.StructField) fieldTag {
	ret := fieldTag{
		name: FieldName(sf.Name),
	}
	tag, ok := sf.Tag.Lookup("graphql")
	if !ok {
		return ret
	}
	if tag == "-" {
		ret.skip = true
		return ret
	}
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		ret.name = parts[0]
	}
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "relayid":
			ret.relayID = true
		}
	}
	return ret
}

func annotations(t reflect.Type) map[string][]interface{} {
	if t.Kind() == reflect.Interface {
		return nil
	}
	if annotated, ok := zeroPointer(t).(Annotated); ok {
		return annotated.GraphQLAnnotations()
	}
	return nil
}

func exportedFields(t reflect.Type) []reflect.StructField {
	var ret []reflect.StructField
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() {
			continue
		}
		ret = append(ret, sf)
	}
	return ret
}

func (s *StructSource) explicitFields(t reflect.Type) []*Operation {
	return append(append([]*Operation(nil), s.Fields[t]...), s.Fields[reflect.PtrTo(t)]...)
}

func (s *StructSource) ChildQueries(t reflect.Type, interfaces []reflect.Type) ([]*Operation, error) {
	t = indirect(t)

	var ret []*Operation
	byName := map[string]*Operation{}
	add := func(op *Operation) {
		if existing, ok := byName[op.Name]; ok {
			if op.Element != nil {
				var sites []Site
				if existing.Element != nil {
					sites = append(sites, existing.Element.Sites...)
				}
				existing.Element = NewTypedElement(append(sites, op.Element.Sites...)...)
			}
			return
		}
		cp := *op
		byName[op.Name] = &cp
		ret = append(ret, &cp)
	}

	for _, op := range s.explicitFields(t) {
		add(op)
	}

	switch t.Kind() {
	case reflect.Struct:
		notes := annotations(t)
		for _, sf := range exportedFields(t) {
			tag := parseFieldTag(sf)
			if tag.skip {
				continue
			}
			add(&Operation{
				Name:              tag.name,
				Description:       sf.Tag.Get("description"),
				DeprecationReason: sf.Tag.Get("deprecated"),
				Type:              sf.Type,
				Element: NewTypedElement(Site{
					Name:        t.Name() + "." + sf.Name,
					Tag:         sf.Tag,
					Annotations: notes[sf.Name],
				}),
				Resolvers: []*Resolver{
					{
						ReturnType: sf.Type,
						Resolve:    FieldResolver(sf.Index),
					},
				},
				RelayID: tag.relayID,
			})
		}
	case reflect.Interface:
		interfaces = append([]reflect.Type{t}, interfaces...)
	}

	for _, iface := range interfaces {
		for _, op := range methodOperations(iface) {
			add(op)
		}
	}
	return ret, nil
}

// methodOperations returns the fields defined by the methods of an interface.
func methodOperations(iface reflect.Type) []*Operation {
	var ret []*Operation
	for i := 0; i < iface.NumMethod(); i++ {
		m := iface.Method(i)
		if !m.IsExported() {
			continue
		}
		if _, ok := markerMethods[m.Name]; ok {
			continue
		}
		mt := m.Type
		if mt.NumIn() != 0 {
			continue
		}
		if mt.NumOut() != 1 && (mt.NumOut() != 2 || mt.Out(1) != errorType) {
			continue
		}
		ret = append(ret, &Operation{
			Name: FieldName(m.Name),
			Type: mt.Out(0),
			Element: NewTypedElement(Site{
				Name: iface.Name() + "." + m.Name,
			}),
			Resolvers: []*Resolver{
				{
					ReturnType: mt.Out(0),
					Resolve:    MethodResolver(m.Name),
				},
			},
		})
	}
	return ret
}

func (s *StructSource) InputFields(t reflect.Type) ([]*InputField, error) {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return nil, nil
	}
	notes := annotations(t)
	var ret []*InputField
	for _, sf := range exportedFields(t) {
		tag := parseFieldTag(sf)
		if tag.skip {
			continue
		}
		f := &InputField{
			Name:        tag.name,
			Description: sf.Tag.Get("description"),
			Type:        sf.Type,
			Element: NewTypedElement(Site{
				Name:        t.Name() + "." + sf.Name,
				Tag:         sf.Tag,
				Annotations: notes[sf.Name],
			}),
			RelayID: tag.relayID,
			Index:   sf.Index,
		}
		if raw, ok := sf.Tag.Lookup("default"); ok {
			f.DefaultValue = parseDefault(raw)
		}
		ret = append(ret, f)
	}
	return ret, nil
}

// parseDefault interprets a default tag as JSON, falling back to the raw string.
func parseDefault(raw string) DefaultValue {
	var v interface{}
	if err := jsoniter.UnmarshalFromString(raw, &v); err != nil {
		return Default(raw)
	}
	return Default(v)
}
