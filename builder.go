package schemafu

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// Builder maps operations and Go types into schema elements. It is the entry point mappers use to
// map nested types.
type Builder struct {
	bc *BuildContext
}

func NewBuilder(bc *BuildContext) *Builder {
	return &Builder{
		bc: bc,
	}
}

func (b *Builder) BuildContext() *BuildContext {
	return b.bc
}

// Build assembles a schema from the given configuration. Any error aborts the build.
func Build(cfg *Config) (*Schema, error) {
	return NewBuilder(NewBuildContext(cfg)).Build()
}

// Build maps the queries, mutations, subscriptions, and directives of the configuration, in that
// order.
func (b *Builder) Build() (*Schema, error) {
	bc := b.bc

	queries, err := b.generateQueries()
	if err != nil {
		return nil, err
	}
	mutations, err := b.generateMutations()
	if err != nil {
		return nil, err
	}
	subscriptions, err := b.generateSubscriptions()
	if err != nil {
		return nil, err
	}
	directives, err := b.generateDirectives()
	if err != nil {
		return nil, err
	}

	ret := &Schema{
		Query:         rootType(bc.QueryRoot, queries),
		Mutation:      rootType(bc.MutationRoot, mutations),
		Subscription:  rootType(bc.SubscriptionRoot, subscriptions),
		Queries:       queries,
		Mutations:     mutations,
		Subscriptions: subscriptions,
		Directives:    directives,
		CodeRegistry:  bc.CodeRegistry,
	}

	if err := bc.TypeCache.ResolveTypeReferences(ret.roots()...); err != nil {
		return nil, errors.Wrap(err, "error resolving type references")
	}
	if err := b.checkPossibleTypes(); err != nil {
		return nil, err
	}
	ret.Types = bc.TypeCache.Types()
	if err := ret.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid schema")
	}
	return ret, nil
}

func (b *Builder) generateQueries() ([]*schema.FieldDefinition, error) {
	bc := b.bc
	ops := bc.Config.Queries
	fields := make([]*schema.FieldDefinition, 0, len(ops)+1)
	for _, op := range ops {
		field, err := b.MapField(bc.QueryRoot, op, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping query %v", op.Name)
		}
		fields = append(fields, field)
	}

	if err := bc.TypeCache.ResolveTypeReferences(fieldNodes(fields)...); err != nil {
		return nil, errors.Wrap(err, "error resolving type references")
	}

	for _, op := range ops {
		if op.Name == relay.NodeQueryName {
			return fields, nil
		}
	}
	table := b.nodeQueriesByType(ops, fields)
	if table.Len() > 0 {
		node, err := b.nodeField(table)
		if err != nil {
			return nil, err
		}
		fields = append(fields, node)
	}
	return fields, nil
}

func (b *Builder) generateMutations() ([]*schema.FieldDefinition, error) {
	bc := b.bc
	var fields []*schema.FieldDefinition
	for _, op := range bc.Config.Mutations {
		var field *schema.FieldDefinition
		var err error
		if bc.Relay.CompliantMutations {
			field, err = b.mapRelayMutation(bc.MutationRoot, op)
		} else {
			field, err = b.MapField(bc.MutationRoot, op, nil)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping mutation %v", op.Name)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (b *Builder) generateSubscriptions() ([]*schema.FieldDefinition, error) {
	bc := b.bc
	var fields []*schema.FieldDefinition
	for _, op := range bc.Config.Subscriptions {
		field, err := b.MapField(bc.SubscriptionRoot, subscriptionOperation(op), nil)
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping subscription %v", op.Name)
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func (b *Builder) generateDirectives() ([]*schema.DirectiveDefinition, error) {
	bc := b.bc
	var ret []*schema.DirectiveDefinition
	for _, t := range bc.Config.AdditionalDirectives {
		params := DirectiveBuilderParams{
			Source: bc.OperationSource,
		}
		if t.Kind() == reflect.Interface {
			params.ConcreteSubTypes = bc.ConcreteSubTypes(t)
		}
		d, err := bc.DirectiveBuilder.ClientDirective(t, params)
		if err != nil {
			return nil, errors.Wrapf(err, "error building directive from %v", t)
		}
		def, err := b.MapDirectiveDefinition(d)
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping directive %v", d.Name)
		}
		ret = append(ret, def)
	}
	return ret, nil
}

// checkPossibleTypes ensures every object registered as a possible type of an interface declares
// it.
func (b *Builder) checkPossibleTypes() error {
	bc := b.bc
	for _, name := range bc.TypeRegistry.AbstractTypeNames() {
		if t, _ := bc.TypeCache.Resolve(name); t != nil {
			if _, ok := t.(*schema.InterfaceType); !ok {
				continue
			}
		}
		for _, mapped := range bc.TypeRegistry.OutputTypes(name) {
			if obj, ok := mapped.Type.(*schema.ObjectType); ok && !obj.Implements(name) {
				return &MappingError{
					Message: obj.Name + " is a possible type of " + name + " but does not implement it",
				}
			}
		}
	}
	return nil
}

// MapOutputType maps a Go type to an output type.
func (b *Builder) MapOutputType(t reflect.Type, env *MappingEnvironment) (schema.Type, error) {
	return b.mapType(t, nil, env, false)
}

// MapOutputTypeWithSkip maps a Go type to an output type without using the mappers in skip.
func (b *Builder) MapOutputTypeWithSkip(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return b.mapType(t, skip, env, false)
}

// MapInputType maps a Go type to an input type.
func (b *Builder) MapInputType(t reflect.Type, env *MappingEnvironment) (schema.Type, error) {
	return b.mapType(t, nil, env, true)
}

// MapInputTypeWithSkip maps a Go type to an input type without using the mappers in skip.
func (b *Builder) MapInputTypeWithSkip(t reflect.Type, skip MapperSet, env *MappingEnvironment) (schema.Type, error) {
	return b.mapType(t, skip, env, true)
}

func (b *Builder) mapType(t reflect.Type, skip MapperSet, env *MappingEnvironment, input bool) (schema.Type, error) {
	if env.Input != input {
		env = env.Child(env.Element, input)
	}
	if t == nil {
		return nil, env.Errorf("no type given")
	}

	env.push(t)
	defer env.pop()

	mapper, err := b.bc.TypeMappers.Select(env.Element, t, skip)
	if err != nil {
		if merr, ok := err.(*MappingError); ok {
			merr.Path = env.Path()
		}
		return nil, err
	}

	var mapped schema.Type
	if input {
		mapped, err = mapper.MapInput(t, skip, env)
	} else {
		mapped, err = mapper.MapOutput(t, skip, env)
	}
	if err != nil {
		return nil, err
	} else if mapped == nil {
		return nil, env.Errorf("%T produced no type", mapper)
	} else if input && !mapped.IsInputType() {
		return nil, env.Errorf("%v cannot be used as an input type", mapped)
	} else if !input && !mapped.IsOutputType() {
		return nil, env.Errorf("%v cannot be used as an output type", mapped)
	}

	named, ok := mapped.(schema.NamedType)
	if !ok {
		return mapped, nil
	}
	canonical, err := b.complete(named, indirect(t), env.Element)
	if err != nil {
		if merr, ok := err.(*MappingError); ok {
			merr.Path = env.Path()
		}
		return nil, err
	}
	return canonical, nil
}

// complete runs the uniqueness check for a newly produced named type and returns the canonical
// instance for its name.
func (b *Builder) complete(t schema.NamedType, native reflect.Type, element *TypedElement) (schema.NamedType, error) {
	if _, ok := t.(*schema.TypeReference); ok {
		return t, nil
	}
	result, err := b.bc.Validator.CheckUniqueness(t, native, element)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		b.bc.Logger.WithField("type", t.TypeName()).Warn(result.Message)
	}
	return b.bc.TypeCache.Complete(t, native), nil
}

// nodeInterface returns the Node interface, adding it to the schema's types.
func (b *Builder) nodeInterface(element *TypedElement) (schema.NamedType, error) {
	return b.complete(b.bc.NodeInterface, nil, element)
}

// MapField maps an operation to a field of the named parent type and registers its resolver.
func (b *Builder) MapField(parentType string, op *Operation, parent *MappingEnvironment) (*schema.FieldDefinition, error) {
	field, err := b.buildField(parentType, op, parent)
	if err != nil {
		return nil, err
	}
	resolver, err := b.createResolver(op)
	if err != nil {
		return nil, err
	}
	if op.RelayID {
		resolver = b.relayIDResolver(parentType, resolver)
	}
	if err := b.RegisterResolver(parentType, field.Name, resolver); err != nil {
		return nil, err
	}
	return field, nil
}

func (b *Builder) buildField(parentType string, op *Operation, parent *MappingEnvironment) (*schema.FieldDefinition, error) {
	bc := b.bc
	bc.Logger.WithField("field", parentType+"."+op.Name).Debug("mapping operation")

	env := b.childEnvironment(parent, op.Element, false)
	var t schema.Type
	if op.RelayID {
		t = relayIDType(op.Type)
	} else {
		var err error
		if t, err = b.MapOutputType(op.Type, env); err != nil {
			return nil, err
		}
	}

	field := &schema.FieldDefinition{
		Name:              op.Name,
		Description:       op.Description,
		DeprecationReason: op.DeprecationReason,
		Type:              t,
	}

	directives, err := b.directives(op.Element, schema.DirectiveLocationFieldDefinition, bc.DirectiveBuilder.FieldDefinitionDirectives)
	if err != nil {
		return nil, err
	}
	field.Directives = directives

	for _, arg := range op.Arguments {
		if !arg.Mappable() {
			continue
		}
		def, err := b.mapArgument(arg, env)
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping argument %v", arg.Name)
		}
		field.Arguments = append(field.Arguments, def)
	}

	if bc.Relay.StrictConnectionSpec && b.isConnection(op, field) {
		if err := checkConnectionSpecCompliance(op.Name, field.Arguments); err != nil {
			return nil, err
		}
	}

	return bc.Transformers.TransformField(field, op, b)
}

func (b *Builder) isConnection(op *Operation, field *schema.FieldDefinition) bool {
	if op.Type != nil {
		if _, ok := relay.ConnectionNodeType(indirect(op.Type)); ok {
			return true
		}
	}
	return relay.IsConnectionType(field.Type, b.bc.TypeCache.Resolve)
}

// relayIDType returns the type of a Relay id backed by values of t. Lists of ids are supported.
func relayIDType(t reflect.Type) schema.Type {
	if t == nil {
		return schema.IDType
	}
	switch t.Kind() {
	case reflect.Ptr:
		return schema.UnwrapNonNull(relayIDType(t.Elem()))
	case reflect.Slice:
		return schema.NewListType(relayIDType(t.Elem()))
	case reflect.Array:
		return schema.NewNonNullType(schema.NewListType(relayIDType(t.Elem())))
	}
	if (&NonNullMapper{}).Supports(t) {
		return schema.NewNonNullType(schema.IDType)
	}
	return schema.IDType
}

func (b *Builder) mapArgument(arg *OperationArgument, parent *MappingEnvironment) (*schema.InputValueDefinition, error) {
	bc := b.bc
	env := parent.Child(arg.Element, true)
	var t schema.Type
	if arg.RelayID {
		t = relayIDType(arg.Type)
	} else {
		var err error
		if t, err = b.MapInputType(arg.Type, env); err != nil {
			return nil, err
		}
	}

	def := &schema.InputValueDefinition{
		Name:         arg.Name,
		Description:  arg.Description,
		Type:         t,
		DefaultValue: arg.DefaultValue.schemaValue(),
	}

	directives, err := b.directives(arg.Element, schema.DirectiveLocationArgumentDefinition, bc.DirectiveBuilder.ArgumentDefinitionDirectives)
	if err != nil {
		return nil, err
	}
	def.Directives = directives

	return bc.Transformers.TransformArgument(def, arg, b)
}

// MapInputField maps a field of an input object.
func (b *Builder) MapInputField(f *InputField, parent *MappingEnvironment) (*schema.InputValueDefinition, error) {
	bc := b.bc
	env := b.childEnvironment(parent, f.Element, true)
	var t schema.Type
	if f.RelayID {
		t = relayIDType(f.Type)
	} else {
		var err error
		if t, err = b.MapInputType(f.Type, env); err != nil {
			return nil, err
		}
	}

	def := &schema.InputValueDefinition{
		Name:         f.Name,
		Description:  f.Description,
		Type:         t,
		DefaultValue: f.DefaultValue.schemaValue(),
	}

	directives, err := b.directives(f.Element, schema.DirectiveLocationInputFieldDefinition, bc.DirectiveBuilder.InputFieldDefinitionDirectives)
	if err != nil {
		return nil, err
	}
	def.Directives = directives

	return bc.Transformers.TransformInputField(def, f, b)
}

type directiveSource func(site Site, params DirectiveBuilderParams) ([]*Directive, error)

func (b *Builder) directives(element *TypedElement, location schema.DirectiveLocation, build directiveSource) ([]*schema.Directive, error) {
	if element == nil {
		return nil, nil
	}
	params := DirectiveBuilderParams{
		Location: location,
		Source:   b.bc.OperationSource,
	}
	var ret []*schema.Directive
	for _, site := range element.Sites {
		directives, err := build(site, params)
		if err != nil {
			return nil, errors.Wrapf(err, "error building directives of %v", site.Name)
		}
		for _, d := range directives {
			applied, err := b.MapDirective(d)
			if err != nil {
				return nil, err
			}
			ret = append(ret, applied)
		}
	}
	return ret, nil
}

// MapDirective maps a directive applied to an element. Definitions are shared by all
// applications of a directive with the same name.
func (b *Builder) MapDirective(d *Directive) (*schema.Directive, error) {
	def, err := b.MapDirectiveDefinition(d)
	if err != nil {
		return nil, err
	}
	ret := &schema.Directive{
		Definition: def,
	}
	for _, arg := range d.Arguments {
		ret.Arguments = append(ret.Arguments, &schema.Argument{
			Name:  arg.Name,
			Value: arg.Value,
		})
	}
	return ret, nil
}

// MapDirectiveDefinition returns the definition of a directive, mapping it the first time a
// directive with its name is seen.
func (b *Builder) MapDirectiveDefinition(d *Directive) (*schema.DirectiveDefinition, error) {
	bc := b.bc
	if def, ok := bc.directiveDefinitions[d.Name]; ok {
		return def, nil
	}

	def := &schema.DirectiveDefinition{
		Name:        d.Name,
		Description: d.Description,
		Locations:   d.Locations,
	}
	bc.directiveDefinitions[d.Name] = def

	for _, arg := range d.Arguments {
		argDef, err := b.mapDirectiveArgument(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "error mapping argument %v of directive %v", arg.Name, d.Name)
		}
		def.Arguments = append(def.Arguments, argDef)
	}

	transformed, err := bc.Transformers.TransformDirective(def, d, b)
	if err != nil {
		return nil, err
	}
	bc.directiveDefinitions[d.Name] = transformed
	return transformed, nil
}

func (b *Builder) mapDirectiveArgument(arg *DirectiveArgument) (*schema.InputValueDefinition, error) {
	bc := b.bc
	env := newMappingEnvironment(arg.Element, b, true)
	t, err := b.MapInputType(arg.Type, env)
	if err != nil {
		return nil, err
	}

	def := &schema.InputValueDefinition{
		Name:         arg.Name,
		Description:  arg.Description,
		Type:         t,
		DefaultValue: arg.DefaultValue.schemaValue(),
	}

	directives, err := b.directives(arg.Element, schema.DirectiveLocationArgumentDefinition, bc.DirectiveBuilder.ArgumentDefinitionDirectives)
	if err != nil {
		return nil, err
	}
	def.Directives = directives

	return bc.Transformers.TransformDirectiveArgument(def, arg, b)
}

func (b *Builder) createResolver(op *Operation) (schema.Resolver, error) {
	resolver, err := b.bc.ResolverFactory(op, b.bc.ValueMapper, b.bc.Interceptors)
	if err != nil {
		return nil, errors.Wrapf(err, "error creating resolver for %v", op.Name)
	}
	return resolver, nil
}

// RegisterResolver binds a resolver to a field. Each field may only be bound once.
func (b *Builder) RegisterResolver(parentType, field string, resolver schema.Resolver) error {
	return b.bc.CodeRegistry.Register(schema.Coordinates(parentType, field), resolver)
}

// relayIDResolver encodes the values produced by resolver as global ids of the object's type. For
// interface fields, the type is determined by the Go type of the object.
func (b *Builder) relayIDResolver(parentType string, resolver schema.Resolver) schema.Resolver {
	codec := b.bc.Relay.IDCodec
	native := b.bc.TypeCache.Native(parentType)
	abstract := native != nil && native.Kind() == reflect.Interface
	return func(env *schema.ResolveEnv) (interface{}, error) {
		v, err := resolver(env)
		if err != nil || isNil(v) {
			return nil, err
		}
		typeName := parentType
		if abstract && env.Object != nil {
			if name := TypeName(reflect.TypeOf(env.Object)); name != "" {
				typeName = name
			}
		}
		return encodeRelayID(codec, typeName, v)
	}
}

func encodeRelayID(codec relay.IDCodec, typeName string, v interface{}) (interface{}, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return codec.Encode(typeName, v)
	}
	ret := make([]interface{}, rv.Len())
	for i := range ret {
		elem := rv.Index(i).Interface()
		if isNil(elem) {
			continue
		}
		id, err := codec.Encode(typeName, elem)
		if err != nil {
			return nil, err
		}
		ret[i] = id
	}
	return ret, nil
}

func rootType(name string, fields []*schema.FieldDefinition) *schema.ObjectType {
	if len(fields) == 0 {
		return nil
	}
	return &schema.ObjectType{
		Name:   name,
		Fields: fields,
	}
}

func fieldNodes(fields []*schema.FieldDefinition) []interface{} {
	ret := make([]interface{}, len(fields))
	for i, f := range fields {
		ret[i] = f
	}
	return ret
}
