// internal/events/hub.go
package events

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub fans events out to in-process subscribers. Every transport delivers
// through one.
type Hub struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[Kind]map[uint64]Handler
	logger   *logrus.Entry
}

func NewHub(logger *logrus.Logger) *Hub {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Hub{
		handlers: make(map[Kind]map[uint64]Handler),
		logger:   logger.WithField("component", "events.hub"),
	}
}

func (h *Hub) Subscribe(kind Kind, handler Handler) (*Subscription, error) {
	if !kind.Valid() {
		return nil, &ChannelError{Transport: "hub", Op: "subscribe", Err: errors.New("unknown event kind " + string(kind))}
	}
	if handler == nil {
		return nil, &ChannelError{Transport: "hub", Op: "subscribe", Err: errors.New("nil handler")}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	if h.handlers[kind] == nil {
		h.handlers[kind] = make(map[uint64]Handler)
	}
	h.handlers[kind][h.nextID] = handler
	return &Subscription{id: h.nextID, kind: kind}, nil
}

// Unsubscribe is idempotent.
func (h *Hub) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return &ChannelError{Transport: "hub", Op: "unsubscribe", Err: errors.New("nil subscription")}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if handlers, ok := h.handlers[sub.kind]; ok {
		delete(handlers, sub.id)
		if len(handlers) == 0 {
			delete(h.handlers, sub.kind)
		}
	}
	return nil
}

// Publish delivers synchronously to every current subscriber of the kind.
// Handlers run outside the lock so they may unsubscribe.
func (h *Hub) Publish(event Event) error {
	if !event.Kind.Valid() {
		h.logger.WithField("kind", event.Kind).Debug("Dropping event of unknown kind")
		return nil
	}

	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.handlers[event.Kind]))
	for _, handler := range h.handlers[event.Kind] {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
	return nil
}

// Subscribers reports how many handlers listen for kind.
func (h *Hub) Subscribers(kind Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers[kind])
}
