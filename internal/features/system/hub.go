package system

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event is the wire format pushed to dashboard clients.
type Event struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans application events out to connected websocket clients. Slow
// subscribers lose events rather than blocking publishers.
type Hub struct {
	log *zap.Logger

	mu          sync.RWMutex
	subscribers map[chan Event]struct{}
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:         log,
		subscribers: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new event channel. The caller must invoke the
// returned function when the connection goes away.
func (h *Hub) Subscribe() (chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		delete(h.subscribers, ch)
		h.mu.Unlock()
		close(ch)
	}
}

// Publish delivers an event to every subscriber without blocking.
func (h *Hub) Publish(event string, payload any) {
	evt := Event{
		Type:      event,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subscribers {
		select {
		case ch <- evt:
		default:
			h.log.Warn("dropping event for slow subscriber", zap.String("event", event))
		}
	}
}

// SubscriberCount reports how many clients are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
