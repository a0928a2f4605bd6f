package schemafu

import (
	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// Transformer can rewrite the elements produced by a build. Each function is optional and is
// invoked as the last step of producing an element of its kind, with the description the element
// was built from. Returning an error aborts the build.
type Transformer struct {
	Field             func(field *schema.FieldDefinition, op *Operation, b *Builder, bc *BuildContext) (*schema.FieldDefinition, error)
	Argument          func(arg *schema.InputValueDefinition, src *OperationArgument, b *Builder, bc *BuildContext) (*schema.InputValueDefinition, error)
	InputField        func(field *schema.InputValueDefinition, src *InputField, b *Builder, bc *BuildContext) (*schema.InputValueDefinition, error)
	Directive         func(def *schema.DirectiveDefinition, src *Directive, b *Builder, bc *BuildContext) (*schema.DirectiveDefinition, error)
	DirectiveArgument func(arg *schema.InputValueDefinition, src *DirectiveArgument, b *Builder, bc *BuildContext) (*schema.InputValueDefinition, error)
}

// Transformers are applied in order.
type Transformers []Transformer

func (ts Transformers) TransformField(field *schema.FieldDefinition, op *Operation, b *Builder) (*schema.FieldDefinition, error) {
	for _, t := range ts {
		if t.Field == nil {
			continue
		}
		var err error
		if field, err = t.Field(field, op, b, b.bc); err != nil {
			return nil, errors.Wrapf(err, "error transforming field %v", op.Name)
		} else if field == nil {
			return nil, errors.Errorf("transformer removed field %v", op.Name)
		}
	}
	return field, nil
}

func (ts Transformers) TransformArgument(arg *schema.InputValueDefinition, src *OperationArgument, b *Builder) (*schema.InputValueDefinition, error) {
	for _, t := range ts {
		if t.Argument == nil {
			continue
		}
		var err error
		if arg, err = t.Argument(arg, src, b, b.bc); err != nil {
			return nil, errors.Wrapf(err, "error transforming argument %v", src.Name)
		} else if arg == nil {
			return nil, errors.Errorf("transformer removed argument %v", src.Name)
		}
	}
	return arg, nil
}

func (ts Transformers) TransformInputField(field *schema.InputValueDefinition, src *InputField, b *Builder) (*schema.InputValueDefinition, error) {
	for _, t := range ts {
		if t.InputField == nil {
			continue
		}
		var err error
		if field, err = t.InputField(field, src, b, b.bc); err != nil {
			return nil, errors.Wrapf(err, "error transforming input field %v", src.Name)
		} else if field == nil {
			return nil, errors.Errorf("transformer removed input field %v", src.Name)
		}
	}
	return field, nil
}

func (ts Transformers) TransformDirective(def *schema.DirectiveDefinition, src *Directive, b *Builder) (*schema.DirectiveDefinition, error) {
	for _, t := range ts {
		if t.Directive == nil {
			continue
		}
		var err error
		if def, err = t.Directive(def, src, b, b.bc); err != nil {
			return nil, errors.Wrapf(err, "error transforming directive %v", src.Name)
		} else if def == nil {
			return nil, errors.Errorf("transformer removed directive %v", src.Name)
		}
	}
	return def, nil
}

func (ts Transformers) TransformDirectiveArgument(arg *schema.InputValueDefinition, src *DirectiveArgument, b *Builder) (*schema.InputValueDefinition, error) {
	for _, t := range ts {
		if t.DirectiveArgument == nil {
			continue
		}
		var err error
		if arg, err = t.DirectiveArgument(arg, src, b, b.bc); err != nil {
			return nil, errors.Wrapf(err, "error transforming directive argument %v", src.Name)
		} else if arg == nil {
			return nil, errors.Errorf("transformer removed directive argument %v", src.Name)
		}
	}
	return arg, nil
}
