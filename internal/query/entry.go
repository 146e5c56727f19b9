package query

import "time"

// State of a cache entry.
//
//	Empty      --fetch-->      Loading
//	Loading    --ok-->         Fresh(v)      --err--> Failed
//	Fresh(v)   --invalidate--> Stale(v)
//	Stale(v)   --fetch-->      Refreshing(v)
//	Refreshing --ok-->         Fresh(v')     --err--> Failed (v kept)
//	Failed     --fetch-->      Loading, or Refreshing when a value is held
//
// An invalidation while a fetch is in flight lets that fetch land as Stale.
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateFresh
	StateStale
	StateRefreshing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateFresh:
		return "fresh"
	case StateStale:
		return "stale"
	case StateRefreshing:
		return "refreshing"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

type entry struct {
	state     State
	value     any
	hasValue  bool
	err       error
	updatedAt time.Time
	lastUsed  time.Time

	// seq numbers fetches in start order; appliedSeq is the fetch whose
	// result is held. Older results never overwrite newer ones.
	seq        uint64
	appliedSeq uint64
	// Fetches numbered at or below invalidSeq started before the last
	// invalidation and land as Stale.
	invalidSeq uint64
	// epoch changes on invalidation so a new read does not join a fetch that
	// started before it.
	epoch     uint64
	inFlight  int
	observers int
}

func (e *entry) begin(now time.Time) uint64 {
	e.seq++
	e.inFlight++
	e.lastUsed = now
	if e.hasValue {
		e.state = StateRefreshing
	} else {
		e.state = StateLoading
	}
	return e.seq
}

// settle applies a fetch result and reports whether it was applied
func (e *entry) settle(seq uint64, value any, err error, now time.Time) bool {
	e.inFlight--
	if seq < e.appliedSeq {
		e.restoreIdleState()
		return false
	}
	e.appliedSeq = seq

	if err != nil {
		e.err = err
		e.state = StateFailed
		return true
	}

	e.value = value
	e.hasValue = true
	e.err = nil
	e.updatedAt = now
	switch {
	case seq <= e.invalidSeq:
		e.state = StateStale
	case e.inFlight > 0:
		e.state = StateRefreshing
	default:
		e.state = StateFresh
	}
	return true
}

// restoreIdleState settles the state after a discarded result
func (e *entry) restoreIdleState() {
	if e.inFlight > 0 || e.state != StateRefreshing && e.state != StateLoading {
		return
	}
	if e.appliedSeq <= e.invalidSeq {
		e.state = StateStale
	} else {
		e.state = StateFresh
	}
}

func (e *entry) invalidate() bool {
	switch e.state {
	case StateFresh:
		e.state = StateStale
	case StateLoading, StateRefreshing:
		e.invalidSeq = e.seq
	case StateStale:
	default:
		return false
	}
	e.epoch++
	return true
}

func (e *entry) fresh(now time.Time, staleTime time.Duration) bool {
	if e.state != StateFresh {
		return false
	}
	return staleTime <= 0 || now.Sub(e.updatedAt) < staleTime
}
