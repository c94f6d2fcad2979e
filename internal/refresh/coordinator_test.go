package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurum-jewels/admin-console/internal/events"
)

func quietEntry() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// gatedFetch hands out one gate per call, in call order.
type gatedFetch struct {
	mu    sync.Mutex
	gates []chan string
	calls int
}

func newGatedFetch(n int) *gatedFetch {
	g := &gatedFetch{}
	for i := 0; i < n; i++ {
		g.gates = append(g.gates, make(chan string, 1))
	}
	return g
}

func (g *gatedFetch) fetch(ctx context.Context) (string, error) {
	g.mu.Lock()
	n := g.calls
	g.calls++
	g.mu.Unlock()

	select {
	case v := <-g.gates[n]:
		if v == "fail" {
			return "", errors.New("backend down")
		}
		return v, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (g *gatedFetch) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type changeSpy struct {
	mu     sync.Mutex
	values []string
}

func (s *changeSpy) record(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

func (s *changeSpy) writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.values...)
}

func TestStaleResponseIsDropped(t *testing.T) {
	fetch := newGatedFetch(3)
	fetch.gates[0] <- "initial"
	spy := &changeSpy{}

	c := New[string](nil, Options[string]{Fetch: fetch.fetch, OnChange: spy.record, Logger: quietEntry()})
	require.NoError(t, c.Start(context.Background()))

	c.Refresh()
	require.Eventually(t, func() bool { return fetch.count() == 2 }, time.Second, time.Millisecond)
	c.Refresh()
	require.Eventually(t, func() bool { return fetch.count() == 3 }, time.Second, time.Millisecond)
	assert.Equal(t, Refreshing, c.State())

	fetch.gates[2] <- "newer"
	require.Eventually(t, func() bool { v, _ := c.Current(); return v == "newer" }, time.Second, time.Millisecond)

	fetch.gates[1] <- "older"
	c.Wait()

	current, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "newer", current)
	assert.Equal(t, []string{"initial", "newer"}, spy.writes())
	assert.Equal(t, Connected, c.State())
}

func TestNoStateWritesAfterClose(t *testing.T) {
	fetch := newGatedFetch(2)
	fetch.gates[0] <- "initial"
	spy := &changeSpy{}

	// ignores cancellation so the late result really arrives
	stubborn := func(ctx context.Context) (string, error) {
		return fetch.fetch(context.Background())
	}

	c := New[string](nil, Options[string]{Fetch: stubborn, OnChange: spy.record, Logger: quietEntry()})
	require.NoError(t, c.Start(context.Background()))

	c.Refresh()
	require.Eventually(t, func() bool { return fetch.count() == 2 }, time.Second, time.Millisecond)
	require.NoError(t, c.Close())

	fetch.gates[1] <- "late"
	c.Wait()

	current, _ := c.Current()
	assert.Equal(t, "initial", current)
	assert.Equal(t, []string{"initial"}, spy.writes())
	assert.Equal(t, Disconnected, c.State())
	assert.ErrorIs(t, c.RefreshAndWait(), ErrClosed)
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	fetch := newGatedFetch(2)
	fetch.gates[0] <- "initial"

	c := New[string](nil, Options[string]{Fetch: fetch.fetch, Logger: quietEntry()})
	require.NoError(t, c.Start(context.Background()))

	c.Refresh()
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	require.NoError(t, c.Close())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("in-flight fetch was not cancelled")
	}
}

type order struct {
	ID     string `json:"_id"`
	Status string `json:"orderStatus"`
}

func TestOrderUpdatedRouting(t *testing.T) {
	hub := events.NewHub(nil)
	var fetches int32
	spy := &changeSpy{}

	c := New[order](hub, Options[order]{
		Kinds: []events.Kind{events.OrderUpdated},
		Fetch: func(ctx context.Context) (order, error) {
			atomic.AddInt32(&fetches, 1)
			return order{ID: "o1", Status: "Processing"}, nil
		},
		Apply: func(current order, e events.Event) (order, bool) {
			if e.Kind != events.OrderUpdated || e.ResourceID() != current.ID {
				return current, false
			}
			var next order
			if err := json.Unmarshal(e.Payload, &next); err != nil {
				return current, false
			}
			return next, true
		},
		OnChange: func(o order) { spy.record(o.Status) },
		Logger:   quietEntry(),
	})
	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.Live())
	assert.Equal(t, int32(1), atomic.LoadInt32(&fetches))

	hub.Publish(events.Event{Kind: events.OrderUpdated, Payload: []byte(`{"_id":"o2","orderStatus":"Shipped"}`)})
	c.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches), "non-matching update refetches")

	hub.Publish(events.Event{Kind: events.OrderUpdated, Payload: []byte(`{"_id":"o1","orderStatus":"Accepted"}`)})
	c.Wait()
	assert.Equal(t, int32(2), atomic.LoadInt32(&fetches), "matching update applies without a fetch")

	current, _ := c.Current()
	assert.Equal(t, "Accepted", current.Status)
	assert.Equal(t, []string{"Processing", "Processing", "Accepted"}, spy.writes())

	require.NoError(t, c.Close())
	assert.Equal(t, 0, hub.Subscribers(events.OrderUpdated))
}

func TestDataUpdatedTriggersRefetch(t *testing.T) {
	hub := events.NewHub(nil)
	var fetches int32

	c := New[int](hub, Options[int]{
		Kinds: []events.Kind{events.DataUpdated, events.OrderCreated},
		Fetch: func(ctx context.Context) (int, error) {
			return int(atomic.AddInt32(&fetches, 1)), nil
		},
		Logger: quietEntry(),
	})
	require.NoError(t, c.Start(context.Background()))

	hub.Publish(events.Event{Kind: events.DataUpdated})
	c.Wait()
	hub.Publish(events.Event{Kind: events.OrderCreated})
	c.Wait()
	hub.Publish(events.Event{Kind: events.OrderUpdated})
	c.Wait()

	assert.Equal(t, int32(3), atomic.LoadInt32(&fetches))
	current, _ := c.Current()
	assert.Equal(t, 3, current)
	require.NoError(t, c.Close())
}

func TestFailedRefreshKeepsPreviousState(t *testing.T) {
	fetch := newGatedFetch(3)
	fetch.gates[0] <- "initial"
	fetch.gates[1] <- "fail"
	fetch.gates[2] <- "recovered"

	c := New[string](nil, Options[string]{Fetch: fetch.fetch, Logger: quietEntry()})
	require.NoError(t, c.Start(context.Background()))

	assert.Error(t, c.RefreshAndWait())
	current, _ := c.Current()
	assert.Equal(t, "initial", current)
	assert.Error(t, c.Err())

	require.NoError(t, c.RefreshAndWait())
	current, _ = c.Current()
	assert.Equal(t, "recovered", current)
	assert.NoError(t, c.Err())
}

type brokenChannel struct{}

func (brokenChannel) Subscribe(events.Kind, events.Handler) (*events.Subscription, error) {
	return nil, &events.ChannelError{Transport: "test", Op: "subscribe", Err: errors.New("refused")}
}

func (brokenChannel) Unsubscribe(*events.Subscription) error { return nil }

func TestSubscriptionFailureDegrades(t *testing.T) {
	c := New[string](brokenChannel{}, Options[string]{
		Kinds:  []events.Kind{events.DataUpdated},
		Fetch:  func(context.Context) (string, error) { return "loaded", nil },
		Logger: quietEntry(),
	})

	require.NoError(t, c.Start(context.Background()))
	assert.False(t, c.Live())
	current, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, "loaded", current)
}

func TestUnreachableStreamIsNotLive(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	stream := events.NewStreamClient("http://127.0.0.1:1/api", "/events", 20*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go stream.Run(ctx)

	opts := Options[string]{
		Kinds:  []events.Kind{events.DataUpdated, events.OrderCreated},
		Fetch:  func(context.Context) (string, error) { return "loaded", nil },
		Logger: quietEntry(),
	}

	first := New[string](stream, opts)
	require.NoError(t, first.Start(context.Background()))
	assert.False(t, first.Live())
	require.NoError(t, first.Close())

	assert.Eventually(t, func() bool {
		sub, err := stream.Subscribe(events.DataUpdated, func(events.Event) {})
		if err == nil {
			stream.Unsubscribe(sub)
			return false
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)

	second := New[string](stream, opts)
	require.NoError(t, second.Start(context.Background()))
	defer second.Close()
	assert.False(t, second.Live())
	assert.Equal(t, 0, stream.Subscribers(events.DataUpdated))

	current, ok := second.Current()
	assert.True(t, ok)
	assert.Equal(t, "loaded", current)
}

func TestStartTwiceAndAfterClose(t *testing.T) {
	c := New[string](nil, Options[string]{
		Fetch:  func(context.Context) (string, error) { return "x", nil },
		Logger: quietEntry(),
	})
	assert.Equal(t, Disconnected, c.State())
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, Connected, c.State())
	assert.ErrorIs(t, c.Start(context.Background()), ErrAlreadyStarted)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	fresh := New[string](nil, Options[string]{Fetch: func(context.Context) (string, error) { return "", nil }})
	require.NoError(t, fresh.Close())
	assert.ErrorIs(t, fresh.Start(context.Background()), ErrClosed)
}
