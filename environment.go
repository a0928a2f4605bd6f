package schemafu

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

type typeStack struct {
	types []reflect.Type
}

// MappingEnvironment is the context of a single mapping invocation. Environments created for
// nested elements share the stack of Go types being visited with their parent.
type MappingEnvironment struct {
	// The element whose type is being mapped.
	Element *TypedElement

	Builder      *Builder
	BuildContext *BuildContext

	// True if the type is being mapped for an input position.
	Input bool

	stack *typeStack
}

func newMappingEnvironment(element *TypedElement, b *Builder, input bool) *MappingEnvironment {
	return &MappingEnvironment{
		Element:      element,
		Builder:      b,
		BuildContext: b.bc,
		Input:        input,
		stack:        &typeStack{},
	}
}

// Child returns an environment for a nested element.
func (env *MappingEnvironment) Child(element *TypedElement, input bool) *MappingEnvironment {
	return &MappingEnvironment{
		Element:      element,
		Builder:      env.Builder,
		BuildContext: env.BuildContext,
		Input:        input,
		stack:        env.stack,
	}
}

// childEnvironment is like env.Child, but also accepts a nil parent.
func (b *Builder) childEnvironment(parent *MappingEnvironment, element *TypedElement, input bool) *MappingEnvironment {
	if parent == nil {
		return newMappingEnvironment(element, b, input)
	}
	return parent.Child(element, input)
}

func (env *MappingEnvironment) push(t reflect.Type) {
	env.stack.types = append(env.stack.types, t)
}

func (env *MappingEnvironment) pop() {
	env.stack.types = env.stack.types[:len(env.stack.types)-1]
}

// Path returns the Go types currently being mapped, outermost first.
func (env *MappingEnvironment) Path() []reflect.Type {
	return append([]reflect.Type(nil), env.stack.types...)
}

// Errorf returns a *MappingError annotated with the environment's element and path.
func (env *MappingEnvironment) Errorf(format string, args ...interface{}) error {
	return &MappingError{
		Path:    env.Path(),
		Element: env.Element,
		Message: fmt.Sprintf(format, args...),
	}
}

func (env *MappingEnvironment) reference(name string) *schema.TypeReference {
	return &schema.TypeReference{
		Name:  name,
		Input: env.Input,
	}
}

// Cached returns the named type produced by build, building it at most once per Go type:
//
//   - If the name is being built, a *schema.TypeReference is returned.
//   - If the name was completed from the same Go type, the completed type is returned.
//   - If the name was completed from a different Go type, the type is built again so that the
//     uniqueness check can compare the definitions. The resolvers built for its fields are only
//     used for objects of that Go type.
//
// Otherwise build is invoked and its result completed in the type cache.
func (env *MappingEnvironment) Cached(name string, native reflect.Type, build func() (schema.NamedType, error)) (schema.NamedType, error) {
	bc := env.BuildContext
	cache := bc.TypeCache
	if cache.InProgress(name) {
		if other := cache.Native(name); other != nil && other != native {
			bc.Logger.WithField("type", name).Warnf("type is referenced from %v while being mapped from %v", nativeName(native), nativeName(other))
		}
		return env.reference(name), nil
	} else if cache.Contains(name) {
		if cache.Native(name) == native {
			t, _ := cache.Resolve(name)
			return t, nil
		}
		return env.rebuild(name, native, build)
	}

	cache.Register(name, native)
	t, err := build()
	if err != nil {
		return nil, err
	}
	return cache.Complete(t, native), nil
}

func (env *MappingEnvironment) rebuild(name string, native reflect.Type, build func() (schema.NamedType, error)) (schema.NamedType, error) {
	bc := env.BuildContext
	bc.Logger.WithField("type", name).Debugf("mapping %v for comparison with %v", nativeName(native), nativeName(bc.TypeCache.Native(name)))

	restore := bc.TypeCache.replace(name, native)
	registry := bc.CodeRegistry
	bc.CodeRegistry = registry.Fork()
	t, err := build()
	fork := bc.CodeRegistry
	bc.CodeRegistry = registry
	restore()
	if err != nil {
		return nil, err
	}
	if err := registry.Merge(fork, name); err != nil {
		return nil, errors.Wrapf(err, "error merging resolvers of %v", nativeName(native))
	}
	first := bc.TypeCache.Native(name)
	for _, coords := range fork.Coordinates() {
		if coords.Type != name {
			continue
		}
		if err := bc.addNativeResolver(coords, first, native, fork.Resolver(coords)); err != nil {
			return nil, errors.Wrapf(err, "error merging resolvers of %v", nativeName(native))
		}
	}
	return t, nil
}

// nativeResolver dispatches on the Go type of the object being resolved. Objects of Go types it
// doesn't know are given to the resolver of the first Go type.
type nativeResolver struct {
	natives   []reflect.Type
	resolvers map[reflect.Type]schema.Resolver
}

func (r *nativeResolver) add(native reflect.Type, resolver schema.Resolver) {
	if _, ok := r.resolvers[native]; ok {
		return
	}
	r.natives = append(r.natives, native)
	r.resolvers[native] = resolver
}

func (r *nativeResolver) resolve(env *schema.ResolveEnv) (interface{}, error) {
	if env.Object != nil {
		if resolver, ok := r.resolvers[indirect(reflect.TypeOf(env.Object))]; ok {
			return resolver(env)
		}
	}
	return r.resolvers[r.natives[0]](env)
}

// addNativeResolver binds the resolver of a field of a type that several Go types are mapped to.
// The first Go type keeps the resolver it registered.
func (bc *BuildContext) addNativeResolver(coords schema.FieldCoordinates, first, native reflect.Type, resolver schema.Resolver) error {
	if r, ok := bc.nativeResolvers[coords]; ok {
		r.add(native, resolver)
		return nil
	}
	existing := bc.CodeRegistry.Resolver(coords)
	if existing == nil {
		return bc.CodeRegistry.Register(coords, resolver)
	}
	r := &nativeResolver{
		resolvers: map[reflect.Type]schema.Resolver{},
	}
	r.add(first, existing)
	r.add(native, resolver)
	if bc.nativeResolvers == nil {
		bc.nativeResolvers = map[schema.FieldCoordinates]*nativeResolver{}
	}
	bc.nativeResolvers[coords] = r
	return bc.CodeRegistry.Replace(coords, r.resolve)
}
