// internal/events/redis.go
package events

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// DefaultPublishTimeout bounds a single publish so a stalled server cannot
// hold up the request that triggered it.
const DefaultPublishTimeout = 3 * time.Second

// RedisChannel maps every event kind to a Redis pub/sub channel named
// prefix+kind.
type RedisChannel struct {
	*Hub
	client         redis.UniversalClient
	prefix         string
	publishTimeout time.Duration
	logger         *logrus.Entry

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisChannel(client redis.UniversalClient, prefix string, logger *logrus.Logger) *RedisChannel {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RedisChannel{
		Hub:            NewHub(logger),
		client:         client,
		prefix:         prefix,
		publishTimeout: DefaultPublishTimeout,
		logger:         logger.WithField("component", "events.redis"),
	}
}

// SetPublishTimeout overrides DefaultPublishTimeout; zero or less keeps it.
func (r *RedisChannel) SetPublishTimeout(d time.Duration) {
	if d > 0 {
		r.publishTimeout = d
	}
}

func (r *RedisChannel) channelName(kind Kind) string {
	return r.prefix + string(kind)
}

// Start subscribes to every kind and pumps messages into the hub until Close.
func (r *RedisChannel) Start(ctx context.Context) error {
	names := make([]string, 0, len(Kinds))
	for _, kind := range Kinds {
		names = append(names, r.channelName(kind))
	}

	pubsub := r.client.Subscribe(ctx, names...)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return &ChannelError{Transport: "redis", Op: "subscribe", Err: err}
	}

	r.mu.Lock()
	r.pubsub = pubsub
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.pump(pubsub.Channel(), r.done)

	r.logger.WithField("channels", names).Info("Subscribed to Redis event channels")
	return nil
}

func (r *RedisChannel) pump(messages <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for msg := range messages {
		kind := Kind(strings.TrimPrefix(msg.Channel, r.prefix))
		event := Event{Kind: kind}
		if msg.Payload != "" {
			event.Payload = []byte(msg.Payload)
		}
		r.Hub.Publish(event)
	}
}

// Publish sends an event to every console instance listening on Redis.
// The client needs ContextTimeoutEnabled for the deadline to cut a blocked
// read short.
func (r *RedisChannel) Publish(event Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.publishTimeout)
	defer cancel()

	if err := r.client.Publish(ctx, r.channelName(event.Kind), []byte(event.Payload)).Err(); err != nil {
		return &ChannelError{Transport: "redis", Op: "publish", Err: err}
	}
	return nil
}

func (r *RedisChannel) Close() error {
	r.mu.Lock()
	pubsub, done := r.pubsub, r.done
	r.pubsub = nil
	r.mu.Unlock()

	if pubsub == nil {
		return nil
	}
	if err := pubsub.Close(); err != nil {
		return &ChannelError{Transport: "redis", Op: "close", Err: err}
	}
	<-done
	return nil
}
