// internal/events/stream.go
package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/r3labs/sse/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/cenkalti/backoff.v1"
)

const streamMaxFrameSize = 1 << 20

// ErrStreamDown is returned by Subscribe while the backend stream is
// unreachable.
var ErrStreamDown = errors.New("backend event stream is not connected")

type streamState int32

const (
	streamConnecting streamState = iota
	streamConnected
	streamDown
)

// Connectivity is implemented by transports whose link to the emitter can
// drop after subscribers registered.
type Connectivity interface {
	Connected() bool
}

// ChannelRoot derives the push channel root from the REST API base by
// dropping a trailing "/api" segment.
func ChannelRoot(apiBase string) string {
	root := strings.TrimSuffix(apiBase, "/")
	root = strings.TrimSuffix(root, "/api")
	return root
}

// StreamClient reads the backend's server-sent event stream and delivers
// each frame through its Hub.
type StreamClient struct {
	*Hub
	url       string
	client    *sse.Client
	retryWait time.Duration
	state     atomic.Int32
	logger    *logrus.Entry
}

func NewStreamClient(apiBase, streamPath string, retryWait time.Duration, logger *logrus.Logger) *StreamClient {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if retryWait <= 0 {
		retryWait = 2 * time.Second
	}
	if streamPath != "" && !strings.HasPrefix(streamPath, "/") {
		streamPath = "/" + streamPath
	}

	s := &StreamClient{
		Hub:       NewHub(logger),
		url:       ChannelRoot(apiBase) + streamPath,
		retryWait: retryWait,
		logger:    logger.WithField("component", "events.stream"),
	}
	s.client = sse.NewClient(s.url, sse.ClientMaxBufferSize(streamMaxFrameSize))
	s.client.ResponseValidator = s.validate
	s.client.ReconnectNotify = func(err error, wait time.Duration) {
		s.markDown(err)
	}
	return s
}

func (s *StreamClient) URL() string {
	return s.url
}

// Connected reports whether the stream is currently open.
func (s *StreamClient) Connected() bool {
	return streamState(s.state.Load()) == streamConnected
}

// Subscribe registers handler on the hub. It fails with a ChannelError once
// a connection attempt has failed and the stream has not recovered.
func (s *StreamClient) Subscribe(kind Kind, handler Handler) (*Subscription, error) {
	if streamState(s.state.Load()) == streamDown {
		return nil, &ChannelError{Transport: "stream", Op: "subscribe", Err: ErrStreamDown}
	}
	return s.Hub.Subscribe(kind, handler)
}

// Run keeps the stream open until ctx is cancelled, reconnecting every
// retryWait whenever it drops.
func (s *StreamClient) Run(ctx context.Context) error {
	for {
		s.client.ReconnectStrategy = backoff.WithContext(backoff.NewConstantBackOff(s.retryWait), ctx)
		err := s.client.SubscribeRawWithContext(ctx, s.deliver)
		if ctx.Err() != nil {
			s.state.Store(int32(streamDown))
			return ctx.Err()
		}
		if err == nil {
			err = errors.New("stream closed by server")
		}
		s.markDown(&ChannelError{Transport: "stream", Op: "read", Err: err})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryWait):
		}
	}
}

func (s *StreamClient) validate(_ *sse.Client, resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return &ChannelError{Transport: "stream", Op: "connect", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	if streamState(s.state.Swap(int32(streamConnected))) != streamConnected {
		s.logger.WithField("url", s.url).Info("Event stream connected")
	}
	return nil
}

func (s *StreamClient) markDown(err error) {
	if streamState(s.state.Swap(int32(streamDown))) != streamDown {
		s.logger.WithError(err).WithField("url", s.url).Warn("Event stream disconnected, retrying")
	}
}

func (s *StreamClient) deliver(msg *sse.Event) {
	kind := Kind(bytes.TrimSpace(msg.Event))
	if kind == "" {
		return
	}

	event := Event{Kind: kind}
	if payload := bytes.TrimSpace(msg.Data); len(payload) > 0 && json.Valid(payload) {
		event.Payload = json.RawMessage(append([]byte(nil), payload...))
	}
	s.Publish(event)
}
