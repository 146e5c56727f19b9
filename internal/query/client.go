package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"carrental-client/internal/logger"
	"carrental-client/internal/observability"
)

// Fetcher performs the network read behind a cache key
type Fetcher[T any] func(ctx context.Context) (T, error)

// Client owns the query cache. Entries change only through reads and the
// invalidation contract of mutations; nothing else writes to it.
type Client struct {
	mu        sync.Mutex
	entries   map[Key]*entry
	listeners map[Key]map[uint64]func()
	nextID    uint64

	group     singleflight.Group
	staleTime time.Duration
	now       func() time.Time
}

type Option func(*Client)

// WithStaleTime expires fresh entries after d; zero keeps them fresh until invalidated
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		entries:   make(map[Key]*entry),
		listeners: make(map[Key]map[uint64]func()),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key when fresh, otherwise issues fetch.
// Concurrent reads of one key share a single request. The request runs
// detached from ctx: a caller that goes away stops waiting, the result still
// lands in the cache.
func Fetch[T any](ctx context.Context, c *Client, key Key, fetch Fetcher[T]) (T, error) {
	var zero T

	c.mu.Lock()
	e := c.entryLocked(key)
	now := c.now()
	e.lastUsed = now
	if e.fresh(now, c.staleTime) {
		v := e.value.(T)
		c.mu.Unlock()
		observability.CacheReads.WithLabelValues(string(key.Resource), "hit").Inc()
		logger.CacheEvent("hit", key.String())
		return v, nil
	}
	flightKey := fmt.Sprintf("%s#%d", key, e.epoch)
	c.mu.Unlock()

	observability.CacheReads.WithLabelValues(string(key.Resource), "miss").Inc()
	logger.CacheEvent("miss", key.String())

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(flightKey, func() (any, error) {
		seq := c.begin(key)
		v, err := fetch(detached)
		c.settle(key, seq, v, err)
		return v, err
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek reads an entry without fetching
func Peek[T any](c *Client, key Key) (value T, state State, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, exists := c.entries[key]
	if !exists {
		return value, StateEmpty, false
	}
	if e.hasValue {
		value = e.value.(T)
	}
	return value, e.state, e.hasValue
}

// State reports the state of a key and the last read error, if any
func (c *Client) State(key Key) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StateEmpty, nil
	}
	return e.state, e.err
}

// Invalidate marks every entry matched by any filter as stale so that the
// next read fetches again, then tells observers of those keys to refetch.
// It returns the number of entries invalidated.
func (c *Client) Invalidate(filters ...Filter) int {
	var notify []func()
	count := 0

	c.mu.Lock()
	for key, e := range c.entries {
		if !matchesAny(filters, key) {
			continue
		}
		if e.invalidate() {
			count++
			observability.CacheInvalidations.WithLabelValues(string(key.Resource)).Inc()
			logger.CacheEvent("invalidate", key.String(), "state", e.state)
		}
		for _, fn := range c.listeners[key] {
			notify = append(notify, fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range notify {
		fn()
	}
	return count
}

// CollectGarbage drops idle entries nobody observes. It returns the number removed.
func (c *Client) CollectGarbage(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if e.observers > 0 || e.inFlight > 0 || now.Sub(e.lastUsed) < maxIdle {
			continue
		}
		delete(c.entries, key)
		removed++
	}
	observability.CacheEntries.Set(float64(len(c.entries)))
	return removed
}

// Len returns the number of entries
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// subscribe registers fn to run when key is invalidated and counts key as observed
func (c *Client) subscribe(key Key, fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if c.listeners[key] == nil {
		c.listeners[key] = make(map[uint64]func())
	}
	c.listeners[key][id] = fn
	c.entryLocked(key).observers++

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.listeners[key], id)
			if len(c.listeners[key]) == 0 {
				delete(c.listeners, key)
			}
			if e, ok := c.entries[key]; ok {
				e.observers--
				e.lastUsed = c.now()
			}
		})
	}
}

func (c *Client) entryLocked(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
		observability.CacheEntries.Set(float64(len(c.entries)))
	}
	return e
}

func (c *Client) begin(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entryLocked(key).begin(c.now())
}

func (c *Client) settle(key Key, seq uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.entryLocked(key).settle(seq, v, err, c.now()) {
		observability.CacheDiscardedResults.WithLabelValues(string(key.Resource)).Inc()
		logger.CacheEvent("discard", key.String(), "seq", seq)
	}
}

func matchesAny(filters []Filter, key Key) bool {
	for _, f := range filters {
		if f.Matches(key) {
			return true
		}
	}
	return false
}
