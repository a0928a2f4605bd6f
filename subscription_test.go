package schemafu

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccbrown/schema-fu/graphql/schema"
)

func TestSubscriptions(t *testing.T) {
	var stopped bool
	s, err := Build(&Config{
		Logger:  testLogger(),
		Queries: []*Operation{itemQuery()},
		Subscriptions: []*Operation{
			{
				Name: "itemAdded",
				Type: reflect.TypeOf((<-chan *testItem)(nil)),
				Resolvers: []*Resolver{
					{
						Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
							ch := make(chan *testItem, 2)
							ch <- &testItem{ID: 1}
							ch <- &testItem{ID: 2}
							close(ch)
							return (<-chan *testItem)(ch), nil
						},
					},
				},
			},
			{
				Name: "tick",
				Type: reflect.TypeOf((chan int)(nil)),
				Resolvers: []*Resolver{
					{
						Resolve: func(env *schema.ResolveEnv) (interface{}, error) {
							return &SubscriptionSourceStream{
								EventChannel: make(chan int),
								Stop: func() {
									stopped = true
								},
							}, nil
						},
					},
				},
			},
			{
				Name:      "broken",
				Type:      reflect.TypeOf((chan int)(nil)),
				Resolvers: constant(1),
			},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, s.Subscription)
	assert.Equal(t, "Item", s.Subscription.Field("itemAdded").Type.String())
	assert.Equal(t, "Int!", s.Subscription.Field("tick").Type.String())

	t.Run("Channel", func(t *testing.T) {
		v, err := s.Resolver("Subscription", "itemAdded")(&schema.ResolveEnv{})
		require.NoError(t, err)
		stream, ok := v.(*SubscriptionSourceStream)
		require.True(t, ok)

		var ids []int
		require.NoError(t, stream.Run(context.Background(), func(event interface{}) {
			ids = append(ids, event.(*testItem).ID)
		}))
		assert.Equal(t, []int{1, 2}, ids)
	})

	t.Run("Stream", func(t *testing.T) {
		v, err := s.Resolver("Subscription", "tick")(&schema.ResolveEnv{})
		require.NoError(t, err)
		stream := v.(*SubscriptionSourceStream)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.Equal(t, context.Canceled, stream.Run(ctx, func(interface{}) {}))

		stream.Close()
		assert.True(t, stopped)
	})

	t.Run("NotChannel", func(t *testing.T) {
		_, err := s.Resolver("Subscription", "broken")(&schema.ResolveEnv{})
		assert.Error(t, err)
	})
}
