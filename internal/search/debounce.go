// Package search provides the type-ahead debouncer shared by location
// search, category search and address autocomplete.
package search

import (
	"context"
	"sync"
	"time"
)

// Debouncer waits for a quiet period after the last keystroke before
// issuing a fetch, and tags every submission with a monotonically increasing
// generation. A completion whose generation is no longer the newest is
// discarded instead of applied, so a slow response for an abandoned query
// can never overwrite the results of a later one.
type Debouncer[T any] struct {
	quiet time.Duration
	fetch func(ctx context.Context, query string) (T, error)
	apply func(query string, result T, err error)

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// New builds a debouncer. fetch runs off the caller's goroutine once the
// quiet period elapses; apply receives the outcome only if no newer
// submission has been made in the meantime.
func New[T any](quiet time.Duration, fetch func(ctx context.Context, query string) (T, error), apply func(query string, result T, err error)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, fetch: fetch, apply: apply}
}

// Submit registers a keystroke. Any pending, not-yet-fired submission is
// superseded; an already in-flight fetch keeps running but its result will
// be discarded.
func (d *Debouncer[T]) Submit(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.run(query, gen) })
}

func (d *Debouncer[T]) run(query string, gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	result, err := d.fetch(ctx, query)

	d.mu.Lock()
	stale := gen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}
	d.apply(query, result, err)
}

// Stop cancels any pending submission and invalidates in-flight fetches.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
