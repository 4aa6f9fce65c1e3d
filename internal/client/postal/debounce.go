package postal

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/scholarmatch/internal/matching"
)

// DefaultDebounce is the input quiet period before a lookup fires.
const DefaultDebounce = 800 * time.Millisecond

// Debouncer runs only the last of a burst of triggers, after the input has
// been quiet for the configured delay.
type Debouncer struct {
	delay time.Duration
	guard matching.Guard

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, replacing any pending call. A newer Trigger cancels
// the ctx of an fn already running and makes its commit return false; fn
// must publish its result only when commit returns true.
func (d *Debouncer) Trigger(ctx context.Context, fn func(ctx context.Context, commit func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	gen, rctx := d.guard.Begin(ctx)
	d.timer = time.AfterFunc(d.delay, func() {
		fn(rctx, func() bool { return d.guard.Commit(gen) })
	})
}

// Stop drops the pending call and invalidates a running one.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.guard.Stop()
}
