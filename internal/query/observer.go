package query

import (
	"context"
	"errors"
	"sync"

	"carrental-client/internal/domain"
	"carrental-client/internal/logger"
	"carrental-client/internal/observability"
)

// Status is what a view renders for a read
type Status int

const (
	// StatusDisabled: required parameters are missing, no request was issued.
	StatusDisabled Status = iota
	StatusLoading
	StatusSuccess
	StatusError
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	case StatusNotFound:
		return "not_found"
	}
	return "unknown"
}

// Result is a snapshot of an observed read
type Result[T any] struct {
	Status Status
	Key    Key
	Data   T
	// HasData is false when Data is the zero value.
	HasData bool
	// IsPreviousData is set while Data still belongs to the previous key and
	// the read for the current key is in flight.
	IsPreviousData bool
	IsFetching     bool
	Err            error
}

// Observer follows one parameterized read for a view. Changing the key keeps
// the last successful value visible until the new read resolves; results for
// keys the observer has since moved away from are discarded.
type Observer[T any] struct {
	client   *Client
	onChange func(Result[T])

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	key         Key
	enabled     bool
	fetch       Fetcher[T]
	token       uint64
	result      Result[T]
	version     uint64
	unsubscribe func()
	closed      bool

	notifyMu  sync.Mutex
	delivered uint64
}

// NewObserver creates a disabled observer. onChange may be nil; it must not
// call back into the observer synchronously.
func NewObserver[T any](c *Client, onChange func(Result[T])) *Observer[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Observer[T]{
		client:   c,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
		result:   Result[T]{Status: StatusDisabled},
	}
}

// Result returns the current snapshot without blocking
func (o *Observer[T]) Result() Result[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

// Disable stops following any key; nothing is fetched until SetKey.
func (o *Observer[T]) Disable() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.detachLocked()
	o.enabled = false
	o.token++
	o.result = Result[T]{Status: StatusDisabled}
	version, r := o.bumpLocked()
	o.mu.Unlock()
	o.notify(version, r)
}

// SetKey points the observer at key, fetching through the cache when needed.
func (o *Observer[T]) SetKey(key Key, fetch Fetcher[T]) {
	o.mu.Lock()
	if o.closed || (o.enabled && o.key == key) {
		o.mu.Unlock()
		return
	}

	previous := o.result
	o.detachLocked()
	o.key = key
	o.fetch = fetch
	o.enabled = true
	o.unsubscribe = o.client.subscribe(key, o.Refetch)
	o.token++
	token := o.token

	cached, state, ok := Peek[T](o.client, key)
	needFetch := true
	switch {
	case ok && state == StateFresh:
		o.result = Result[T]{Status: StatusSuccess, Key: key, Data: cached, HasData: true}
		needFetch = !o.client.isFresh(key)
		o.result.IsFetching = needFetch
	case ok:
		o.result = Result[T]{Status: StatusSuccess, Key: key, Data: cached, HasData: true, IsFetching: true}
	case previous.HasData:
		o.result = Result[T]{
			Status:         StatusSuccess,
			Key:            key,
			Data:           previous.Data,
			HasData:        true,
			IsPreviousData: true,
			IsFetching:     true,
		}
	default:
		o.result = Result[T]{Status: StatusLoading, Key: key, IsFetching: true}
	}
	version, r := o.bumpLocked()
	o.mu.Unlock()

	o.notify(version, r)
	if needFetch {
		go o.run(token, key, fetch)
	}
}

// Refetch re-reads the current key in the background, keeping the current data visible.
func (o *Observer[T]) Refetch() {
	o.mu.Lock()
	if o.closed || !o.enabled {
		o.mu.Unlock()
		return
	}
	o.token++
	token, key, fetch := o.token, o.key, o.fetch
	o.result.IsFetching = true
	version, r := o.bumpLocked()
	o.mu.Unlock()

	o.notify(version, r)
	go o.run(token, key, fetch)
}

// Close stops applying results. In-flight reads still complete into the cache.
func (o *Observer[T]) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	o.detachLocked()
	o.cancel()
}

func (o *Observer[T]) run(token uint64, key Key, fetch Fetcher[T]) {
	v, err := Fetch(o.ctx, o.client, key, fetch)

	o.mu.Lock()
	if o.closed || token != o.token {
		o.mu.Unlock()
		observability.CacheDiscardedResults.WithLabelValues(string(key.Resource)).Inc()
		logger.CacheEvent("discard_superseded", key.String())
		return
	}

	switch {
	case err == nil:
		o.result = Result[T]{Status: StatusSuccess, Key: key, Data: v, HasData: true}
	case errors.Is(err, domain.ErrNotFound):
		o.result = Result[T]{Status: StatusNotFound, Key: key, Err: err}
	default:
		r := Result[T]{Status: StatusError, Key: key, Err: err}
		if o.result.HasData && !o.result.IsPreviousData {
			r.Data, r.HasData = o.result.Data, true
		}
		o.result = r
	}
	version, r := o.bumpLocked()
	o.mu.Unlock()

	o.notify(version, r)
}

func (o *Observer[T]) detachLocked() {
	if o.unsubscribe != nil {
		o.unsubscribe()
		o.unsubscribe = nil
	}
}

func (o *Observer[T]) bumpLocked() (uint64, Result[T]) {
	o.version++
	return o.version, o.result
}

// notify delivers snapshots in version order, dropping any that arrive late.
func (o *Observer[T]) notify(version uint64, r Result[T]) {
	if o.onChange == nil {
		return
	}
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()
	if version <= o.delivered {
		return
	}
	o.delivered = version
	o.onChange(r)
}

func (c *Client) isFresh(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.fresh(c.now(), c.staleTime)
}
