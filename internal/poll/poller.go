// Package poll implements the fixed-delay refresh loop that keeps an entity
// cache approximately fresh while a view is open.
package poll

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Reconciler refetches an entity list on a fixed-delay timer: the next tick
// is scheduled only after the previous fetch settles, so a slow endpoint
// never accumulates overlapping in-flight requests.
type Reconciler[T any] struct {
	interval time.Duration
	fetch    func(context.Context) ([]T, error)
	apply    func([]T)
	logger   *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// New creates a reconciler. fetch retrieves the full list; apply receives it
// on success and is expected to replace the cache wholesale and rebind any
// open selection.
func New[T any](interval time.Duration, fetch func(context.Context) ([]T, error), apply func([]T)) *Reconciler[T] {
	return &Reconciler[T]{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		logger:   slog.Default(),
	}
}

// Start launches the poll loop with an immediate first fetch. A reconciler
// runs at most one loop; calling Start while running is a no-op.
func (r *Reconciler[T]) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	go r.run(ctx, r.done)
}

func (r *Reconciler[T]) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		items, err := r.fetch(ctx)

		// A response that settles after Stop is discarded, not applied
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			// Background refresh failures never reach the user
			r.logger.Warn("poll fetch failed", "error", err)
		} else {
			r.apply(items)
		}

		timer.Reset(r.interval)
	}
}

// Stop prevents future ticks and waits for the loop to exit. An in-flight
// fetch is not interrupted beyond context cancellation; its result is
// ignored.
func (r *Reconciler[T]) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	cancel, done := r.cancel, r.done
	r.running = false
	r.mu.Unlock()

	cancel()
	<-done
}
