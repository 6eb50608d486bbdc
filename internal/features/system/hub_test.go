package system

import (
	"testing"

	"go.uber.org/zap"
)

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first, closeFirst := hub.Subscribe()
	second, closeSecond := hub.Subscribe()
	defer closeFirst()
	defer closeSecond()

	hub.Publish("layout.updated", map[string]string{"userId": "u1"})

	for _, ch := range []chan Event{first, second} {
		select {
		case evt := <-ch:
			if evt.Type != "layout.updated" {
				t.Fatalf("unexpected event type %q", evt.Type)
			}
			if evt.Timestamp.IsZero() {
				t.Fatal("expected event timestamp to be set")
			}
		default:
			t.Fatal("expected buffered event for subscriber")
		}
	}
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())

	_, unsubscribe := hub.Subscribe()
	unsubscribe()

	if got := hub.SubscriberCount(); got != 0 {
		t.Fatalf("expected 0 subscribers, got %d", got)
	}

	// Must not panic on a closed or removed channel.
	hub.Publish("notification.created", nil)
}

func TestHubDropsWhenSubscriberFull(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	for i := 0; i < cap(ch)+10; i++ {
		hub.Publish("layout.updated", i)
	}

	if got := len(ch); got != cap(ch) {
		t.Fatalf("expected buffer to hold %d events, got %d", cap(ch), got)
	}
}
