// Package schemafu assembles GraphQL schemas from Go types. Operations describe the queries,
// mutations, and subscriptions of the schema, and the Go types they return are mapped recursively
// into object, interface, union, enum, scalar, and input object types, each field bound to a
// resolver.
package schemafu

import (
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// Config defines the operations and types of a schema and the parameters used to build it.
type Config struct {
	Logger logrus.FieldLogger

	// The names of the root operation types. If not given, these are Query, Mutation, and
	// Subscription.
	QueryRoot        string
	MutationRoot     string
	SubscriptionRoot string

	Queries       []*Operation
	Mutations     []*Operation
	Subscriptions []*Operation

	// Types lists the concrete Go types that may be returned by interface and union fields.
	// Interfaces whose methods should become fields of the objects implementing them should be
	// listed here as well.
	Types []reflect.Type

	// Fields adds child operations to the object types mapped from the given Go types. This is
	// typically used for fields that accept arguments.
	Fields map[reflect.Type][]*Operation

	// Additional directive definitions to include in the schema, given as the Go types the
	// directive builder derives them from.
	AdditionalDirectives []reflect.Type

	// These mappers are tried before the built-in ones.
	TypeMappers []TypeMapper

	// Overrides the scalars Go types are mapped to.
	Scalars map[reflect.Type]*schema.ScalarType

	// Discovers the fields of Go types. If not given, a StructSource is used.
	OperationSource OperationSource

	// Builds the directives applied to fields, arguments, and input fields. If not given, an
	// AnnotationDirectiveBuilder is used.
	DirectiveBuilder DirectiveBuilder

	// Applied in order to every field, argument, input field, and directive as the final step of
	// its construction.
	Transformers []Transformer

	// Creates resolvers for operations. If not given, DefaultResolverFactory is used.
	ResolverFactory ResolverFactory

	// Wrapped around every resolver created by the default resolver factory. The first interceptor
	// is the outermost.
	Interceptors []Interceptor

	// Converts argument values to Go values. If not given, a DefaultValueMapper is used.
	ValueMapper ValueMapper

	Relay RelayConfig
}

// RelayConfig configures the Relay conventions applied to the schema.
type RelayConfig struct {
	// If true, mutations are rewritten to accept a single input object and return a payload
	// object, both carrying a clientMutationId.
	CompliantMutations bool `yaml:"compliant_mutations"`

	// If true, fields returning connections must accept the pagination arguments defined by the
	// cursor connections specification.
	StrictConnectionSpec bool `yaml:"strict_connection_spec"`

	// The name and description of the payload field holding the result of a mutation that doesn't
	// return an object. Defaults to "result".
	WrapperFieldName        string `yaml:"wrapper_field_name"`
	WrapperFieldDescription string `yaml:"wrapper_field_description"`

	// Encodes and decodes global ids. If not given, relay.GlobalIDCodec is used.
	IDCodec relay.IDCodec `yaml:"-"`
}

func (cfg RelayConfig) withDefaults() RelayConfig {
	if cfg.WrapperFieldName == "" {
		cfg.WrapperFieldName = "result"
		if cfg.WrapperFieldDescription == "" {
			cfg.WrapperFieldDescription = "Mutation result"
		}
	}
	if cfg.IDCodec == nil {
		cfg.IDCodec = relay.GlobalIDCodec{}
	}
	return cfg
}

func (cfg *Config) logger() logrus.FieldLogger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logrus.StandardLogger()
}

func valueOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
