package schemafu

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
	"github.com/ccbrown/schema-fu/relay"
)

// ResolverFactory creates the resolver registered for an operation.
type ResolverFactory func(op *Operation, vm ValueMapper, interceptors []Interceptor) (schema.Resolver, error)

// Interceptor wraps the invocation of resolvers. Interceptors must invoke next to continue
// resolution.
type Interceptor func(env *schema.ResolveEnv, op *Operation, next schema.Resolver) (interface{}, error)

// DefaultResolverFactory selects the operation resolver that matches the given arguments, converts
// the arguments to Go values with the value mapper, and invokes the resolver through the
// interceptors. The first interceptor is the outermost.
func DefaultResolverFactory(op *Operation, vm ValueMapper, interceptors []Interceptor) (schema.Resolver, error) {
	if len(op.Resolvers) == 0 {
		return nil, errors.Errorf("operation %v has no resolvers", op.Name)
	}
	for _, r := range op.Resolvers {
		if r.Resolve == nil {
			return nil, errors.Errorf("operation %v has a resolver with no function", op.Name)
		}
	}

	resolve := func(env *schema.ResolveEnv) (interface{}, error) {
		r := op.applicableResolver(env.Arguments)
		if r == nil {
			return nil, errors.Errorf("no resolver of %v accepts the given arguments", op.Name)
		}
		args := make(map[string]interface{}, len(env.Arguments))
		for name, v := range env.Arguments {
			if arg := op.Argument(name); arg != nil && v != nil && arg.Type != nil {
				mapped, err := vm.MapArgument(arg, v)
				if err != nil {
					return nil, err
				}
				v = mapped
			}
			args[name] = v
		}
		return r.Resolve(&schema.ResolveEnv{
			Context:   env.Context,
			Object:    env.Object,
			Arguments: args,
		})
	}

	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor, next := interceptors[i], resolve
		resolve = func(env *schema.ResolveEnv) (interface{}, error) {
			return interceptor(env, op, next)
		}
	}
	return resolve, nil
}

// ValueMapper converts argument values given by the execution engine to the Go types resolvers
// expect.
type ValueMapper interface {
	MapArgument(arg *OperationArgument, value interface{}) (interface{}, error)
}

var inputJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	TagKey:                 "graphql",
}.Froze()

// DefaultValueMapper decodes Relay ids, builds structs from input objects, and converts everything
// else by round-tripping it through JSON.
type DefaultValueMapper struct {
	Codec relay.IDCodec

	// Used to determine the fields of input objects.
	Source OperationSource

	// Used to find the implementations of interfaces used as inputs.
	Types []reflect.Type
}

func (m *DefaultValueMapper) MapArgument(arg *OperationArgument, value interface{}) (interface{}, error) {
	v, err := m.value(arg.Type, value, arg.RelayID)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

func (m *DefaultValueMapper) value(t reflect.Type, v interface{}, relayID bool) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}

	switch t.Kind() {
	case reflect.Ptr:
		elem, err := m.value(t.Elem(), v, relayID)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(elem)
		return p, nil
	case reflect.Slice:
		if items, ok := v.([]interface{}); ok {
			ret := reflect.MakeSlice(t, len(items), len(items))
			for i, item := range items {
				elem, err := m.value(t.Elem(), item, relayID)
				if err != nil {
					return reflect.Value{}, err
				}
				ret.Index(i).Set(elem)
			}
			return ret, nil
		}
	}

	if relayID {
		return m.relayID(t, v)
	}

	switch t.Kind() {
	case reflect.Interface:
		if t.NumMethod() > 0 {
			impls := concreteSubTypes(t, m.Types)
			if len(impls) != 1 {
				return reflect.Value{}, errors.Errorf("cannot determine the implementation of %v to decode", t)
			}
			impl := impls[0]
			if !impl.Implements(t) {
				impl = reflect.PtrTo(impl)
			}
			ret, err := m.value(impl, v, false)
			if err != nil {
				return reflect.Value{}, err
			}
			return ret.Convert(t), nil
		}
	case reflect.Struct:
		if fields, ok := v.(map[string]interface{}); ok && m.Source != nil {
			return m.inputObject(t, fields)
		}
	}

	if rv := reflect.ValueOf(v); rv.Type().AssignableTo(t) {
		ret := reflect.New(t).Elem()
		ret.Set(rv)
		return ret, nil
	}
	buf, err := inputJSON.Marshal(v)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "error converting %v to %v", v, t)
	}
	ret := reflect.New(t)
	if err := inputJSON.Unmarshal(buf, ret.Interface()); err != nil {
		return reflect.Value{}, errors.Wrapf(err, "error converting %v to %v", v, t)
	}
	return ret.Elem(), nil
}

func (m *DefaultValueMapper) inputObject(t reflect.Type, values map[string]interface{}) (reflect.Value, error) {
	fields, err := m.Source.InputFields(t)
	if err != nil {
		return reflect.Value{}, err
	}
	ret := reflect.New(t).Elem()
	for _, f := range fields {
		raw, ok := values[f.Name]
		if !ok || f.Index == nil {
			continue
		}
		fv, err := m.value(f.Type, raw, f.RelayID)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "error decoding %v", f.Name)
		}
		dst, err := ret.FieldByIndexErr(f.Index)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "error decoding %v", f.Name)
		}
		dst.Set(fv)
	}
	return ret, nil
}

func (m *DefaultValueMapper) relayID(t reflect.Type, v interface{}) (reflect.Value, error) {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	dst := reflect.New(t)
	if _, err := m.Codec.Decode(s, dst.Interface()); err != nil {
		return reflect.Value{}, &InvalidArgumentError{
			Value:   s,
			Message: s + " is not a valid Relay node ID",
		}
	}
	return dst.Elem(), nil
}

// FieldResolver returns a resolver for the struct field at the given index of the object.
func FieldResolver(index []int) schema.Resolver {
	return func(env *schema.ResolveEnv) (interface{}, error) {
		return fieldValue(env.Object, index)
	}
}

// PropertyResolver returns a resolver for the named struct field of the object.
func PropertyResolver(name string) schema.Resolver {
	return func(env *schema.ResolveEnv) (interface{}, error) {
		return propertyValue(env.Object, name)
	}
}

// MethodResolver returns a resolver that invokes the named method of the object. The method must
// take no arguments and return either a value or a value and an error.
func MethodResolver(name string) schema.Resolver {
	return func(env *schema.ResolveEnv) (interface{}, error) {
		return methodValue(env.Object, name)
	}
}

func fieldValue(object interface{}, index []int) (interface{}, error) {
	v := reflect.ValueOf(object)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("cannot get field of %T", object)
	}
	f, err := v.FieldByIndexErr(index)
	if err != nil {
		return nil, nil
	}
	return f.Interface(), nil
}

func propertyValue(object interface{}, name string) (interface{}, error) {
	v := reflect.ValueOf(object)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, errors.Errorf("cannot get %v of %T", name, object)
	}
	sf, ok := v.Type().FieldByName(name)
	if !ok {
		return nil, errors.Errorf("%T has no field %v", object, name)
	}
	return fieldValue(v.Interface(), sf.Index)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func methodValue(object interface{}, name string) (interface{}, error) {
	if isNil(object) {
		return nil, nil
	}
	method := reflect.ValueOf(object).MethodByName(name)
	if !method.IsValid() {
		return nil, errors.Errorf("%T has no method %v", object, name)
	}
	out := method.Call(nil)
	switch len(out) {
	case 1:
		return out[0].Interface(), nil
	case 2:
		if !out[1].Type().Implements(errorType) {
			break
		}
		if err, _ := out[1].Interface().(error); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
	return nil, errors.Errorf("method %v of %T has an unsupported signature", name, object)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
