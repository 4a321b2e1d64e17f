// SPDX-License-Identifier: MIT
package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/operator"
)

// OperatorCache builds each operator.Pass once per (size, material) and
// hands the same immutable pass to every caller. Concurrent requests for
// a key wait on a single build. Failed builds are not cached.
type OperatorCache struct {
	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
	log     *slog.Logger
}

type cacheKey struct {
	size     int
	material geometry.Material
}

type cacheEntry struct {
	ready   chan struct{}
	cancel  context.CancelFunc
	waiters int
	pass    *operator.Pass
	err     error
}

// NewOperatorCache returns an empty cache logging builds to l (nil means
// slog.Default()).
func NewOperatorCache(l *slog.Logger) *OperatorCache {
	return &OperatorCache{
		entries: make(map[cacheKey]*cacheEntry),
		log:     logging.OrDefault(l),
	}
}

// Get returns the pass for g, building it on first use.
//
// The build runs detached from any single caller. A caller whose ctx ends
// first gets ctx.Err() and stops waiting; the build is cancelled and
// forgotten only once every waiter has left.
func (c *OperatorCache) Get(ctx context.Context, g geometry.Grid) (*operator.Pass, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := cacheKey{size: g.Size, material: g.Material}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		buildCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		e = &cacheEntry{ready: make(chan struct{}), cancel: cancel}
		c.entries[key] = e
		go c.build(buildCtx, key, e, g)
	}
	e.waiters++
	c.mu.Unlock()

	select {
	case <-e.ready:
		return e.pass, e.err
	case <-ctx.Done():
		c.leave(key, e)
		return nil, ctx.Err()
	}
}

// leave drops one waiter from e and abandons the build when none remain.
func (c *OperatorCache) leave(key cacheKey, e *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.waiters--
	if e.waiters > 0 {
		return
	}
	select {
	case <-e.ready:
		return
	default:
	}
	e.cancel()
	if c.entries[key] == e {
		delete(c.entries, key)
	}
}

func (c *OperatorCache) build(ctx context.Context, key cacheKey, e *cacheEntry, g geometry.Grid) {
	defer e.cancel()

	start := time.Now()
	pass, err := operator.Build(ctx, g)

	c.mu.Lock()
	e.pass, e.err = pass, err
	if err != nil && c.entries[key] == e {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	switch {
	case err != nil && ctx.Err() != nil:
		c.log.Debug("operator build abandoned", "size", g.Size)
	case err != nil:
		c.log.Warn("operator build failed", "size", g.Size, "err", err)
	default:
		c.log.Debug("operator built", "size", g.Size, "elapsed", time.Since(start))
		st := pass.Stats()
		c.log.Log(ctx, logging.LevelTrace, "operator stats",
			"size", g.Size,
			"state_len", st.StateLen,
			"transition_nnz", st.TransitionNNZ,
			"input_nnz", st.InputNNZ,
			"transition_max_abs", st.TransitionMaxAbs)
	}
	close(e.ready)
}

// Len returns the number of cached passes, including builds in flight.
func (c *OperatorCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
