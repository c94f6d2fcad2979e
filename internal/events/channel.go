// internal/events/channel.go
package events

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind names a push event emitted by the store after a mutation.
type Kind string

const (
	DataUpdated  Kind = "data_updated"
	OrderCreated Kind = "order_created"
	OrderUpdated Kind = "order_updated"
)

// Kinds lists every event kind the console reacts to.
var Kinds = []Kind{DataUpdated, OrderCreated, OrderUpdated}

func (k Kind) Valid() bool {
	switch k {
	case DataUpdated, OrderCreated, OrderUpdated:
		return true
	}
	return false
}

// Event is one notification. Payload is whatever the emitter attached; for
// order events it is the order document.
type Event struct {
	Kind    Kind            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ResourceID returns the "_id" of the payload, or "" if it has none.
func (e Event) ResourceID() string {
	payload := bytes.TrimSpace(e.Payload)
	if len(payload) == 0 || payload[0] != '{' {
		return ""
	}
	var ref struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(payload, &ref); err != nil {
		return ""
	}
	return ref.ID
}

type Handler func(Event)

// Subscription identifies one registered handler.
type Subscription struct {
	id   uint64
	kind Kind
}

func (s *Subscription) Kind() Kind {
	return s.kind
}

// Channel is the subscribe side of the push transport.
type Channel interface {
	Subscribe(kind Kind, handler Handler) (*Subscription, error)
	Unsubscribe(sub *Subscription) error
}

// Publisher is implemented by transports the console may emit on.
type Publisher interface {
	Publish(event Event) error
}

// ChannelError is a failure to open, use or close the push channel.
type ChannelError struct {
	Transport string
	Op        string
	Err       error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s channel %s: %v", e.Transport, e.Op, e.Err)
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
