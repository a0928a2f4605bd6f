package schemafu

import (
	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

func (b *Builder) mapRelayMutation(parentType string, op *Operation) (*schema.FieldDefinition, error) {
	field, err := b.buildField(parentType, op, nil)
	if err != nil {
		return nil, err
	}
	resolver, err := b.createResolver(op)
	if err != nil {
		return nil, err
	}
	return b.toRelayMutation(parentType, field, resolver)
}

// toRelayMutation rewrites a mapped mutation to accept a single input object and return a payload
// object. The payload contains the fields of the mutation's object type, or a wrapper field if the
// mutation doesn't return an object. Both types carry the clientMutationId given by the client.
func (b *Builder) toRelayMutation(parentType string, mutation *schema.FieldDefinition, resolver schema.Resolver) (*schema.FieldDefinition, error) {
	bc := b.bc
	payloadName := relayTypeName(mutation.Name, "Payload")
	inputName := relayTypeName(mutation.Name, "Input")

	payload := &schema.ObjectType{
		Name: payloadName,
		Fields: []*schema.FieldDefinition{
			{
				Name: relay.ClientMutationIDFieldName,
				Type: schema.NewNonNullType(schema.StringType),
			},
		},
	}
	if err := b.RegisterResolver(payloadName, relay.ClientMutationIDFieldName, clientMutationIDResolver); err != nil {
		return nil, err
	}

	if obj, ok := b.resolveObject(schema.UnwrapNonNull(mutation.Type)); ok {
		for _, f := range obj.Fields {
			if f.Name == relay.ClientMutationIDFieldName {
				continue
			}
			original := bc.CodeRegistry.Resolver(schema.Coordinates(obj.Name, f.Name))
			if original == nil {
				return nil, errors.Errorf("no resolver registered for %v.%v", obj.Name, f.Name)
			}
			payload.Fields = append(payload.Fields, f)
			if err := b.RegisterResolver(payloadName, f.Name, payloadValueResolver(original)); err != nil {
				return nil, err
			}
		}
	} else {
		payload.Fields = append(payload.Fields, &schema.FieldDefinition{
			Name:        bc.Relay.WrapperFieldName,
			Description: bc.Relay.WrapperFieldDescription,
			Type:        mutation.Type,
		})
		if err := b.RegisterResolver(payloadName, bc.Relay.WrapperFieldName, payloadValueResolver(nil)); err != nil {
			return nil, err
		}
	}

	input := &schema.InputObjectType{
		Name: inputName,
		Fields: []*schema.InputValueDefinition{
			{
				Name: relay.ClientMutationIDFieldName,
				Type: schema.NewNonNullType(schema.StringType),
			},
		},
	}
	for _, arg := range mutation.Arguments {
		input.Fields = append(input.Fields, &schema.InputValueDefinition{
			Name:         arg.Name,
			Description:  arg.Description,
			Type:         arg.Type,
			DefaultValue: arg.DefaultValue,
		})
	}

	payloadType, err := b.complete(payload, nil, nil)
	if err != nil {
		return nil, err
	}
	inputType, err := b.complete(input, nil, nil)
	if err != nil {
		return nil, err
	}

	ret := &schema.FieldDefinition{
		Name:              mutation.Name,
		Description:       mutation.Description,
		DeprecationReason: mutation.DeprecationReason,
		Directives:        mutation.Directives,
		Type:              payloadType,
		Arguments: []*schema.InputValueDefinition{
			{
				Name: relay.InputArgumentName,
				Type: schema.NewNonNullType(inputType),
			},
		},
	}
	if err := b.RegisterResolver(parentType, ret.Name, relayMutationResolver(resolver)); err != nil {
		return nil, err
	}
	return ret, nil
}

func (b *Builder) resolveObject(t schema.Type) (*schema.ObjectType, bool) {
	if ref, ok := t.(*schema.TypeReference); ok {
		if resolved, ok := b.bc.TypeCache.Resolve(ref.Name); ok {
			t = resolved
		}
	}
	obj, ok := t.(*schema.ObjectType)
	return obj, ok
}

// relayMutationResolver exposes the fields of the input object, including clientMutationId, as the
// arguments of the original resolver and pairs its result with the clientMutationId.
func relayMutationResolver(resolver schema.Resolver) schema.Resolver {
	return func(env *schema.ResolveEnv) (interface{}, error) {
		input, _ := env.Arguments[relay.InputArgumentName].(map[string]interface{})
		if input == nil {
			input = map[string]interface{}{}
		}
		clientMutationID, _ := input[relay.ClientMutationIDFieldName].(string)
		args := make(map[string]interface{}, len(input))
		for k, v := range input {
			args[k] = v
		}
		v, err := resolver(&schema.ResolveEnv{
			Context:   env.Context,
			Object:    env.Object,
			Arguments: args,
		})
		if err != nil {
			return nil, err
		}
		return &relay.Payload{
			ClientMutationID: clientMutationID,
			Value:            v,
		}, nil
	}
}

// payloadValueResolver invokes resolver with the value of the payload. If resolver is nil, the
// value itself is returned.
func payloadValueResolver(resolver schema.Resolver) schema.Resolver {
	return func(env *schema.ResolveEnv) (interface{}, error) {
		object := env.Object
		if p, ok := object.(*relay.Payload); ok {
			object = p.Value
		}
		if resolver == nil {
			return object, nil
		}
		if isNil(object) {
			return nil, nil
		}
		return resolver(&schema.ResolveEnv{
			Context:   env.Context,
			Object:    object,
			Arguments: env.Arguments,
		})
	}
}

func clientMutationIDResolver(env *schema.ResolveEnv) (interface{}, error) {
	if p, ok := env.Object.(*relay.Payload); ok {
		return p.ClientMutationID, nil
	}
	return propertyValue(env.Object, "ClientMutationID")
}
