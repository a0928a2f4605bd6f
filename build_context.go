package schemafu

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// BuildContext holds the state shared by everything involved in a single build. It is created by
// Build and discarded once the schema is assembled.
type BuildContext struct {
	Config *Config
	Logger logrus.FieldLogger

	QueryRoot        string
	MutationRoot     string
	SubscriptionRoot string

	TypeMappers      TypeMappers
	TypeCache        *TypeCache
	TypeRegistry     *TypeRegistry
	Validator        *Validator
	CodeRegistry     *schema.CodeRegistry
	OperationSource  OperationSource
	DirectiveBuilder DirectiveBuilder
	Transformers     Transformers
	ResolverFactory  ResolverFactory
	Interceptors     []Interceptor
	ValueMapper      ValueMapper
	Relay            RelayConfig

	// The Node interface implemented by every object with a Relay id.
	NodeInterface *schema.InterfaceType

	interfaces           []reflect.Type
	directiveDefinitions map[string]*schema.DirectiveDefinition
	nativeResolvers      map[schema.FieldCoordinates]*nativeResolver
}

func NewBuildContext(cfg *Config) *BuildContext {
	cache := NewTypeCache()
	bc := &BuildContext{
		Config:           cfg,
		Logger:           cfg.logger(),
		QueryRoot:        valueOrDefault(cfg.QueryRoot, "Query"),
		MutationRoot:     valueOrDefault(cfg.MutationRoot, "Mutation"),
		SubscriptionRoot: valueOrDefault(cfg.SubscriptionRoot, "Subscription"),
		TypeMappers:      append(append(TypeMappers(nil), cfg.TypeMappers...), DefaultTypeMappers(cfg.Scalars)...),
		TypeCache:        cache,
		TypeRegistry:     NewTypeRegistry(cache),
		Validator:        NewValidator(),
		CodeRegistry:     schema.NewCodeRegistry(),
		OperationSource:  cfg.OperationSource,
		DirectiveBuilder: cfg.DirectiveBuilder,
		Transformers:     Transformers(cfg.Transformers),
		ResolverFactory:  cfg.ResolverFactory,
		Interceptors:     cfg.Interceptors,
		ValueMapper:      cfg.ValueMapper,
		Relay:            cfg.Relay.withDefaults(),
		NodeInterface:    relay.NewNodeInterface(),

		directiveDefinitions: map[string]*schema.DirectiveDefinition{},
	}
	if bc.OperationSource == nil {
		bc.OperationSource = &StructSource{
			Fields: cfg.Fields,
		}
	}
	if bc.DirectiveBuilder == nil {
		bc.DirectiveBuilder = &AnnotationDirectiveBuilder{}
	}
	if bc.ResolverFactory == nil {
		bc.ResolverFactory = DefaultResolverFactory
	}
	if bc.ValueMapper == nil {
		bc.ValueMapper = &DefaultValueMapper{
			Codec:  bc.Relay.IDCodec,
			Source: bc.OperationSource,
			Types:  cfg.Types,
		}
	}
	for _, t := range cfg.Types {
		if t.Kind() == reflect.Interface && !isUnion(t) && t.NumMethod() > 0 {
			bc.addInterface(t)
		}
	}
	return bc
}

// Interfaces returns the Go interfaces mapped to GraphQL interfaces that objects may implement.
func (bc *BuildContext) Interfaces() []reflect.Type {
	return bc.interfaces
}

func (bc *BuildContext) addInterface(t reflect.Type) {
	for _, existing := range bc.interfaces {
		if existing == t {
			return
		}
	}
	bc.interfaces = append(bc.interfaces, t)
}

// ConcreteSubTypes returns the non-interface types of Config.Types that implement t, either
// directly or via a pointer.
func (bc *BuildContext) ConcreteSubTypes(t reflect.Type) []reflect.Type {
	return concreteSubTypes(t, bc.Config.Types)
}

func concreteSubTypes(t reflect.Type, types []reflect.Type) []reflect.Type {
	var ret []reflect.Type
	for _, candidate := range types {
		if candidate.Kind() == reflect.Interface {
			continue
		}
		if implements(candidate, t) {
			ret = append(ret, candidate)
		}
	}
	return ret
}

func implements(t, iface reflect.Type) bool {
	return t.Implements(iface) || (t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(iface))
}
