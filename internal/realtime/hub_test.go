package realtime

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()

	id := uuid.New()
	hub.Publish("calendar_events", "insert", id)

	want := Change{Table: "calendar_events", Action: "insert", ID: id.String()}
	assert.Equal(t, want, <-a)
	assert.Equal(t, want, <-b)
}

func TestHubSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()

	// overfill the buffer; Publish must never block the write path
	for i := 0; i < cap(ch)+5; i++ {
		hub.Publish("products", "update", uuid.New())
	}

	assert.Len(t, ch, cap(ch))
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()

	hub.Unsubscribe(ch)
	_, open := <-ch
	require.False(t, open)

	// double unsubscribe is a no-op, not a double close
	hub.Unsubscribe(ch)

	// publishing after unsubscribe must not panic
	hub.Publish("products", "delete", uuid.New())
}

func TestNilHubPublishIsSafe(t *testing.T) {
	var hub *Hub
	assert.NotPanics(t, func() {
		hub.Publish("products", "insert", uuid.New())
	})
}
