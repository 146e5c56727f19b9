package query

import (
	"context"
	"fmt"

	"carrental-client/internal/logger"
	"carrental-client/internal/observability"
)

// Mutation is a state-changing request with the closed set of cache entries
// it invalidates on success. Failed mutations invalidate nothing and are never
// retried automatically.
type Mutation[In, Out any] struct {
	Name        string
	Do          func(ctx context.Context, in In) (Out, error)
	Invalidates func(in In, out Out) []Filter
}

// MutationError reports a failed mutation; Unwrap exposes the backend error.
type MutationError struct {
	Mutation string
	Err      error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Mutation, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Pending tracks one submitted mutation
type Pending[Out any] struct {
	done chan struct{}
	out  Out
	err  error
}

// Done is closed once the mutation and its invalidations have completed
func (p *Pending[Out]) Done() <-chan struct{} {
	return p.done
}

// InFlight reports whether the mutation is still running; views use it to
// disable the trigger that submitted it.
func (p *Pending[Out]) InFlight() bool {
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the mutation completes or ctx ends. Ending ctx does not
// abort the mutation.
func (p *Pending[Out]) Wait(ctx context.Context) (Out, error) {
	select {
	case <-p.done:
		return p.out, p.err
	case <-ctx.Done():
		var zero Out
		return zero, ctx.Err()
	}
}

// Submit starts m in the background. Once sent, a mutation always runs to
// completion; its invalidations are applied on success even if nobody waits.
func Submit[In, Out any](ctx context.Context, c *Client, m Mutation[In, Out], in In) *Pending[Out] {
	p := &Pending[Out]{done: make(chan struct{})}
	detached := context.WithoutCancel(ctx)

	go func() {
		defer close(p.done)

		out, err := m.Do(detached, in)
		if err != nil {
			observability.MutationsTotal.WithLabelValues(m.Name, "error").Inc()
			logger.MutationResult(m.Name, err)
			p.err = &MutationError{Mutation: m.Name, Err: err}
			return
		}

		var filters []Filter
		if m.Invalidates != nil {
			filters = m.Invalidates(in, out)
		}
		n := c.Invalidate(filters...)
		observability.MutationsTotal.WithLabelValues(m.Name, "ok").Inc()
		logger.MutationResult(m.Name, nil, "invalidated", filterNames(filters), "entries", n)
		p.out = out
	}()

	return p
}

// Mutate submits m and waits for it
func Mutate[In, Out any](ctx context.Context, c *Client, m Mutation[In, Out], in In) (Out, error) {
	return Submit(ctx, c, m, in).Wait(ctx)
}

func filterNames(filters []Filter) []string {
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = f.String()
	}
	return names
}
