// internal/refresh/coordinator.go
package refresh

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/aurum-jewels/admin-console/internal/events"
)

type State int

const (
	Disconnected State = iota
	Connected
	Refreshing
)

func (s State) String() string {
	switch s {
	case Connected:
		return "connected"
	case Refreshing:
		return "refreshing"
	default:
		return "disconnected"
	}
}

var (
	ErrClosed         = errors.New("coordinator is closed")
	ErrAlreadyStarted = errors.New("coordinator already started")
)

// FetchFunc loads and derives a fresh view state.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ApplyFunc may derive the next state straight from an event. Returning
// false falls back to a refetch.
type ApplyFunc[T any] func(current T, event events.Event) (T, bool)

type Options[T any] struct {
	Kinds    []events.Kind
	Fetch    FetchFunc[T]
	Apply    ApplyFunc[T]
	OnChange func(T)
	Logger   *logrus.Entry
}

// Coordinator owns the derived state of one view. Every fetch gets a
// sequence number when dispatched and only a result newer than the last
// applied one replaces the state. After Close no state write and no
// OnChange call happens.
type Coordinator[T any] struct {
	channel events.Channel
	opts    Options[T]
	logger  *logrus.Entry

	// emitMu serializes state application with OnChange and Close.
	emitMu sync.Mutex

	mu       sync.Mutex
	state    State
	closed   bool
	live     bool
	ctx      context.Context
	cancel   context.CancelFunc
	subs     []*events.Subscription
	seq      uint64
	applied  uint64
	inflight int
	current  T
	loaded   bool
	lastErr  error

	wg sync.WaitGroup
}

// New builds a coordinator. channel may be nil, in which case the view only
// refreshes on demand.
func New[T any](channel events.Channel, opts Options[T]) *Coordinator[T] {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Coordinator[T]{
		channel: channel,
		opts:    opts,
		logger:  logger.WithField("component", "refresh"),
	}
}

// Start subscribes to the configured kinds and performs the initial load.
// A subscription failure is logged and the view degrades to manual refresh.
func (c *Coordinator[T]) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.cancel != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	if c.channel != nil {
		c.subscribe()
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.state = Connected
	c.mu.Unlock()

	return <-c.dispatch()
}

func (c *Coordinator[T]) subscribe() {
	subs := make([]*events.Subscription, 0, len(c.opts.Kinds))
	for _, kind := range c.opts.Kinds {
		sub, err := c.channel.Subscribe(kind, c.handle)
		if err != nil {
			c.logger.WithError(err).WithField("kind", kind).Warn("Live updates unavailable, falling back to manual refresh")
			for _, s := range subs {
				c.channel.Unsubscribe(s)
			}
			return
		}
		subs = append(subs, sub)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		for _, s := range subs {
			c.channel.Unsubscribe(s)
		}
		return
	}
	c.subs = subs
	c.live = len(subs) > 0
	c.mu.Unlock()
}

func (c *Coordinator[T]) handle(event events.Event) {
	if c.opts.Apply != nil {
		c.mu.Lock()
		current, loaded, closed := c.current, c.loaded, c.closed
		c.mu.Unlock()
		if closed {
			return
		}

		if loaded {
			if next, ok := c.opts.Apply(current, event); ok {
				c.logger.WithField("kind", event.Kind).Debug("Applying event directly")
				c.applyDirect(next)
				return
			}
		}
	}

	c.logger.WithField("kind", event.Kind).Debug("Event received, refreshing")
	c.dispatch()
}

// Refresh triggers a fetch without waiting for it.
func (c *Coordinator[T]) Refresh() {
	c.dispatch()
}

// RefreshAndWait triggers a fetch and returns its error.
func (c *Coordinator[T]) RefreshAndWait() error {
	return <-c.dispatch()
}

func (c *Coordinator[T]) dispatch() <-chan error {
	result := make(chan error, 1)

	c.mu.Lock()
	if c.closed || c.ctx == nil {
		c.mu.Unlock()
		result <- ErrClosed
		return result
	}
	c.seq++
	seq := c.seq
	c.inflight++
	c.state = Refreshing
	ctx := c.ctx
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		value, err := c.opts.Fetch(ctx)
		result <- c.complete(seq, value, err)
	}()
	return result
}

func (c *Coordinator[T]) complete(seq uint64, value T, err error) error {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.inflight--
	if c.inflight == 0 {
		c.state = Connected
	}

	if err != nil {
		if seq > c.applied {
			c.lastErr = err
		}
		c.mu.Unlock()
		c.logger.WithError(err).Warn("Refresh failed, keeping previous state")
		return err
	}

	if seq <= c.applied {
		c.mu.Unlock()
		c.logger.WithField("seq", seq).Debug("Dropping stale refresh result")
		return nil
	}

	c.applied = seq
	c.current = value
	c.loaded = true
	c.lastErr = nil
	c.mu.Unlock()

	if c.opts.OnChange != nil {
		c.opts.OnChange(value)
	}
	return nil
}

func (c *Coordinator[T]) applyDirect(value T) {
	c.emitMu.Lock()
	defer c.emitMu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.seq++
	c.applied = c.seq
	c.current = value
	c.loaded = true
	c.lastErr = nil
	c.mu.Unlock()

	if c.opts.OnChange != nil {
		c.opts.OnChange(value)
	}
}

// Current returns the last applied state and whether one exists.
func (c *Coordinator[T]) Current() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.loaded
}

func (c *Coordinator[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err is the error of the newest failed fetch, cleared by the next success.
func (c *Coordinator[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Live reports whether the coordinator is subscribed to the push channel and
// the channel can currently deliver events.
func (c *Coordinator[T]) Live() bool {
	c.mu.Lock()
	live := c.live
	c.mu.Unlock()
	if !live {
		return false
	}
	if conn, ok := c.channel.(events.Connectivity); ok {
		return conn.Connected()
	}
	return true
}

// Close unsubscribes and cancels in-flight fetches. It must not be called
// from OnChange.
func (c *Coordinator[T]) Close() error {
	c.emitMu.Lock()
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.emitMu.Unlock()
		return nil
	}
	c.closed = true
	c.state = Disconnected
	c.live = false
	subs, cancel := c.subs, c.cancel
	c.subs = nil
	c.mu.Unlock()
	c.emitMu.Unlock()

	if cancel != nil {
		cancel()
	}

	var firstErr error
	for _, sub := range subs {
		if err := c.channel.Unsubscribe(sub); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Wait blocks until every dispatched fetch has returned.
func (c *Coordinator[T]) Wait() {
	c.wg.Wait()
}
