package pubsub

import (
	"context"
	"testing"

	"ward/internal/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishSubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroker[string](nil)
	sub, unsub := b.Subscribe(context.Background())
	defer unsub()

	b.Publish(resource.CreatedEvent, "fred")

	ev := <-sub
	assert.Equal(t, resource.CreatedEvent, ev.Type)
	assert.Equal(t, "fred", ev.Payload)
}

func TestBroker_Unsubscribe(t *testing.T) {
	t.Parallel()

	b := NewBroker[string](nil)
	sub, unsub := b.Subscribe(context.Background())

	unsub()

	_, open := <-sub
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	b.Publish(resource.CreatedEvent, "fred")
}

func TestBroker_ContextCancelUnsubscribes(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	b := NewBroker[string](nil)
	sub, _ := b.Subscribe(ctx)

	cancel()

	// Channel is eventually closed by the broker.
	for range sub {
	}
}
