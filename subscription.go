package schemafu

import (
	"context"
	"reflect"

	"github.com/pkg/errors"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

// SubscriptionSourceStream is the value subscription fields resolve to. Subscription operations
// whose Go type is a channel are mapped to fields of the channel's element type, and the channels
// their resolvers return are wrapped in a SubscriptionSourceStream.
type SubscriptionSourceStream struct {
	// A channel of events. The channel can be of any type.
	EventChannel interface{}

	// Stop, if given, is invoked by Close. It should cause the event channel to be closed.
	Stop func()
}

// Run drives the stream until it's closed or until the given context is cancelled.
func (s *SubscriptionSourceStream) Run(ctx context.Context, onEvent func(interface{})) error {
	eventChannel := reflect.ValueOf(s.EventChannel)
	ctxChannel := reflect.ValueOf(ctx.Done())
	selectCases := []reflect.SelectCase{
		{
			Dir:  reflect.SelectRecv,
			Chan: ctxChannel,
		},
		{
			Dir:  reflect.SelectRecv,
			Chan: eventChannel,
		},
	}
	for {
		chosen, recv, recvOK := reflect.Select(selectCases)
		if chosen == 0 {
			// ctx.Done()
			return ctx.Err()
		}
		if recvOK {
			onEvent(recv.Interface())
		} else {
			return nil
		}
	}
}

func (s *SubscriptionSourceStream) Close() {
	if s.Stop != nil {
		s.Stop()
	}
}

func isEventChannel(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Chan && t.ChanDir()&reflect.RecvDir != 0
}

// subscriptionOperation returns op unchanged unless its type is a channel. Otherwise it returns a
// copy typed by the channel's element type.
func subscriptionOperation(op *Operation) *Operation {
	if !isEventChannel(op.Type) {
		return op
	}
	ret := *op
	ret.Type = op.Type.Elem()
	ret.Resolvers = make([]*Resolver, len(op.Resolvers))
	for i, r := range op.Resolvers {
		if r == nil {
			continue
		}
		cp := *r
		if isEventChannel(cp.ReturnType) {
			cp.ReturnType = cp.ReturnType.Elem()
		}
		if resolve := r.Resolve; resolve != nil {
			cp.Resolve = func(env *schema.ResolveEnv) (interface{}, error) {
				v, err := resolve(env)
				if err != nil {
					return nil, err
				}
				return sourceStream(v)
			}
		}
		ret.Resolvers[i] = &cp
	}
	return &ret
}

func sourceStream(v interface{}) (interface{}, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case *SubscriptionSourceStream:
		return v, nil
	}
	if isNil(v) {
		return nil, nil
	} else if !isEventChannel(reflect.TypeOf(v)) {
		return nil, errors.Errorf("subscription resolved to %T instead of a channel", v)
	}
	return &SubscriptionSourceStream{
		EventChannel: v,
	}, nil
}
