package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewBus(nil)
	ch, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	bus.Publish(Event{Type: TypeUserRegistered, UserID: 1})

	got := <-ch
	assert.Equal(t, TypeUserRegistered, got.Type)
	assert.Equal(t, int64(1), got.UserID)
	assert.NotEmpty(t, got.ID)
	assert.NotEmpty(t, got.Timestamp)
}

func TestInMemoryBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus(nil)
	ch, unsubscribe := bus.Subscribe()

	unsubscribe()
	unsubscribe()

	_, open := <-ch
	assert.False(t, open)

	require.NotPanics(t, func() { bus.Publish(Event{Type: TypeLoginFailed}) })
}

func TestInMemoryBus_FullSubscriberDoesNotBlock(t *testing.T) {
	bus := NewBus(nil)
	_, unsubscribe := bus.Subscribe()
	defer unsubscribe()

	for range 250 {
		bus.Publish(Event{Type: TypeLoginFailed})
	}
}
