package schemafu

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// DirectiveBuilderParams are given to directive builders along with the declaration being
// processed.
type DirectiveBuilderParams struct {
	// The location of the element the directives will be applied to. Empty for client directives.
	Location schema.DirectiveLocation

	// For abstract directive types, the concrete types in Config.Types that implement them.
	ConcreteSubTypes []reflect.Type

	Source OperationSource
}

// DirectiveBuilder describes the directives applied to declarations and the directives defined
// for clients.
type DirectiveBuilder interface {
	FieldDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error)
	ArgumentDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error)
	InputFieldDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error)

	// ClientDirective describes a directive that is defined by the schema for use in documents.
	ClientDirective(t reflect.Type, params DirectiveBuilderParams) (*Directive, error)
}

// DirectiveNamer can be implemented by annotation types to override their directive's name.
type DirectiveNamer interface {
	DirectiveName() string
}

// DirectiveLocator can be implemented by annotation types to declare where their directive may
// be used.
type DirectiveLocator interface {
	DirectiveLocations() []schema.DirectiveLocation
}

// AnnotationDirectiveBuilder turns each struct value in a site's annotations into a directive.
// The exported fields of the struct become the directive's arguments:
//
//	type Cost struct {
//	    Complexity int `description:"The complexity of the field."`
//	}
//
// An annotation of Cost{Complexity: 5} on a field produces @cost(complexity: 5).
type AnnotationDirectiveBuilder struct{}

var _ DirectiveBuilder = (*AnnotationDirectiveBuilder)(nil)

func (b *AnnotationDirectiveBuilder) FieldDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error) {
	return b.siteDirectives(site, params)
}

func (b *AnnotationDirectiveBuilder) ArgumentDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error) {
	return b.siteDirectives(site, params)
}

func (b *AnnotationDirectiveBuilder) InputFieldDefinitionDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error) {
	return b.siteDirectives(site, params)
}

func (b *AnnotationDirectiveBuilder) siteDirectives(site Site, params DirectiveBuilderParams) ([]*Directive, error) {
	var ret []*Directive
	for _, annotation := range site.Annotations {
		v := reflect.ValueOf(annotation)
		if indirect(v.Type()).Kind() != reflect.Struct {
			continue
		}
		d, err := b.directive(v, params)
		if err != nil {
			return nil, err
		}
		if !hasLocation(d.Locations, params.Location) {
			return nil, errors.Errorf("directive @%v cannot be applied to %v", d.Name, params.Location)
		}
		ret = append(ret, d)
	}
	return ret, nil
}

func (b *AnnotationDirectiveBuilder) ClientDirective(t reflect.Type, params DirectiveBuilderParams) (*Directive, error) {
	if t.Kind() == reflect.Interface {
		if len(params.ConcreteSubTypes) != 1 {
			return nil, errors.Errorf("directive type %v must have exactly one implementation in Config.Types", t)
		}
		t = params.ConcreteSubTypes[0]
	}
	d, err := b.directive(reflect.New(indirect(t)).Elem(), params)
	if err != nil {
		return nil, err
	}
	if len(d.Locations) == 0 {
		return nil, errors.Errorf("directive @%v must implement DirectiveLocator", d.Name)
	}
	for _, arg := range d.Arguments {
		arg.Value = nil
	}
	return d, nil
}

func (b *AnnotationDirectiveBuilder) directive(v reflect.Value, params DirectiveBuilderParams) (*Directive, error) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem()).Elem()
		} else {
			v = v.Elem()
		}
	}
	t := v.Type()
	ptr := zeroPointer(t)

	d := &Directive{
		Name:        DirectiveName(t),
		Description: typeDescription(t),
	}
	if namer, ok := ptr.(DirectiveNamer); ok {
		d.Name = namer.DirectiveName()
	}
	if locator, ok := ptr.(DirectiveLocator); ok {
		d.Locations = locator.DirectiveLocations()
	} else if params.Location != "" {
		d.Locations = []schema.DirectiveLocation{params.Location}
	}

	source := params.Source
	if source == nil {
		source = &StructSource{}
	}
	fields, err := source.InputFields(t)
	if err != nil {
		return nil, errors.Wrapf(err, "error discovering arguments of directive @%v", d.Name)
	}
	for _, f := range fields {
		arg := &DirectiveArgument{
			Name:         f.Name,
			Description:  f.Description,
			Type:         f.Type,
			Element:      f.Element,
			DefaultValue: f.DefaultValue,
		}
		if f.Index != nil {
			if fv, err := v.FieldByIndexErr(f.Index); err == nil {
				arg.Value = fv.Interface()
			}
		}
		d.Arguments = append(d.Arguments, arg)
	}
	return d, nil
}

func hasLocation(locations []schema.DirectiveLocation, location schema.DirectiveLocation) bool {
	for _, l := range locations {
		if l == location {
			return true
		}
	}
	return false
}
