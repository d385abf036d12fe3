// Package async wraps the synchronous core (sqlite is a blocking driver)
// behind a bounded worker pool, so callers on the transport layer never block
// the goroutine handling an inbound request on disk I/O.
package async

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Pool runs submitted work on a bounded number of goroutines.
type Pool struct {
	group  *errgroup.Group
	logger *slog.Logger
}

// NewPool creates a Pool that runs at most size goroutines at once. A size
// of 0 or less means unbounded. A nil logger disables the pool's per-task
// tracing.
func NewPool(size int, logger *slog.Logger) *Pool {
	g := new(errgroup.Group)
	if size > 0 {
		g.SetLimit(size)
	}
	return &Pool{group: g, logger: logger}
}

// Future is a handle to a value that will become available once the work
// submitted to produce it completes. CorrelationID identifies this task
// across the pool's trace log lines, the way the original implementation's
// CpuFuture calls could be followed by request id.
type Future[T any] struct {
	CorrelationID string
	done          chan struct{}
	val           T
	err           error
}

// Wait blocks until the future resolves, or ctx is done, whichever comes
// first.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Spawn submits fn to run on the pool and returns a Future for its result.
// fn is not passed ctx directly: it runs detached from the caller's
// goroutine, but Wait still honors cancellation of the ctx it's given.
func Spawn[T any](p *Pool, fn func() (T, error)) *Future[T] {
	f := &Future[T]{CorrelationID: uuid.NewString(), done: make(chan struct{})}
	if p.logger != nil {
		p.logger.Debug("async task submitted", "correlation_id", f.CorrelationID)
	}
	p.group.Go(func() error {
		defer close(f.done)
		f.val, f.err = fn()
		if p.logger != nil {
			p.logger.Debug("async task completed", "correlation_id", f.CorrelationID, "error", f.err)
		}
		return nil
	})
	return f
}

// Wait blocks until every task submitted to the pool so far has completed.
func (p *Pool) Wait() error {
	return p.group.Wait()
}
