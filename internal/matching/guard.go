package matching

import (
	"context"
	"sync"
)

// Guard orders overlapping asynchronous requests. Only the most recently
// started request may publish its result; starting a new one cancels the
// previous one.
type Guard struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	loading bool
}

// Begin starts a new generation and returns its number together with a
// context that is cancelled once a newer generation begins.
func (g *Guard) Begin(ctx context.Context) (uint64, context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.cancel != nil {
		g.cancel()
	}
	g.gen++
	ctx, g.cancel = context.WithCancel(ctx)
	g.loading = true
	return g.gen, ctx
}

// Commit reports whether gen is still the latest generation. The caller may
// write shared state only when it returns true. Committing the latest
// generation ends the loading phase.
func (g *Guard) Commit(gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if gen != g.gen {
		return false
	}
	g.loading = false
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	return true
}

// Current returns the latest generation number.
func (g *Guard) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// Loading reports whether the latest generation is still in flight.
func (g *Guard) Loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// Stop cancels any in-flight request and invalidates its generation.
func (g *Guard) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	g.gen++
	g.loading = false
}
