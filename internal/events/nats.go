// internal/events/nats.go
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// NATSChannel maps every event kind to the subject prefix+kind.
type NATSChannel struct {
	*Hub
	conn   *nats.Conn
	prefix string
	logger *logrus.Entry

	mu   sync.Mutex
	subs []*nats.Subscription
}

// ConnectNATS dials the server with unlimited reconnects.
func ConnectNATS(url, prefix string, logger *logrus.Logger) (*NATSChannel, error) {
	conn, err := nats.Connect(url,
		nats.Name("admin-console"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, &ChannelError{Transport: "nats", Op: "connect", Err: fmt.Errorf("failed to connect to NATS: %w", err)}
	}
	return NewNATSChannel(conn, prefix, logger), nil
}

func NewNATSChannel(conn *nats.Conn, prefix string, logger *logrus.Logger) *NATSChannel {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &NATSChannel{
		Hub:    NewHub(logger),
		conn:   conn,
		prefix: prefix,
		logger: logger.WithField("component", "events.nats"),
	}
}

// Connected reports whether the NATS connection is currently up.
func (n *NATSChannel) Connected() bool {
	return n.conn != nil && n.conn.IsConnected()
}

func (n *NATSChannel) subject(kind Kind) string {
	return n.prefix + string(kind)
}

// Start subscribes to the subject of every kind.
func (n *NATSChannel) Start() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, kind := range Kinds {
		kind := kind
		sub, err := n.conn.Subscribe(n.subject(kind), func(msg *nats.Msg) {
			event := Event{Kind: kind}
			if len(msg.Data) > 0 {
				event.Payload = msg.Data
			}
			n.Hub.Publish(event)
		})
		if err != nil {
			return &ChannelError{Transport: "nats", Op: "subscribe", Err: fmt.Errorf("failed to subscribe to %s: %w", n.subject(kind), err)}
		}
		n.subs = append(n.subs, sub)
	}

	n.logger.WithField("prefix", n.prefix).Info("Subscribed to NATS event subjects")
	return nil
}

func (n *NATSChannel) Publish(event Event) error {
	if err := n.conn.Publish(n.subject(event.Kind), event.Payload); err != nil {
		return &ChannelError{Transport: "nats", Op: "publish", Err: err}
	}
	return nil
}

func (n *NATSChannel) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, sub := range n.subs {
		if err := sub.Unsubscribe(); err != nil {
			n.logger.WithError(err).Warn("Failed to unsubscribe NATS subject")
		}
	}
	n.subs = nil
	n.conn.Close()
	return nil
}
