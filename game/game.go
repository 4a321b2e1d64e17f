// SPDX-License-Identifier: MIT
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/simulation"
)

// Game is one player slot. The zero value is not usable; call New.
type Game struct {
	mu      sync.RWMutex
	session *simulation.Session

	// init admits one Initialize at a time.
	init chan struct{}

	material geometry.Material
	maxSize  int
	cache    *OperatorCache
	log      *slog.Logger
}

// New returns an empty slot configured by opts.
func New(opts ...Option) *Game {
	o := gatherOptions(opts...)
	log := logging.OrDefault(o.logger)
	if o.cache == nil {
		o.cache = NewOperatorCache(log)
	}

	return &Game{
		init:     make(chan struct{}, 1),
		material: o.material,
		maxSize:  o.maxSize,
		cache:    o.cache,
		log:      log,
	}
}

// Initialize starts a fresh session of the given size, discarding the
// previous one, and returns its s×s map. On error the previous session
// is kept. Concurrent calls are serialized: the last one admitted is the
// session that remains.
//
// Errors: simulation.ErrInvalidConfiguration for size < 1, size above
// the cap or an invalid material; ctx.Err() when the operator build is
// abandoned; sparse errors if the build diverges.
func (g *Game) Initialize(ctx context.Context, size int) ([][]float64, error) {
	if g.maxSize > 0 && size > g.maxSize {
		return nil, fmt.Errorf("Initialize: size %d exceeds %d: %w", size, g.maxSize, simulation.ErrInvalidConfiguration)
	}
	grid, err := geometry.New(size, g.material)
	if err != nil {
		return nil, fmt.Errorf("Initialize: %w", err)
	}

	select {
	case g.init <- struct{}{}:
		defer func() { <-g.init }()
	case <-ctx.Done():
		return nil, fmt.Errorf("Initialize: %w", ctx.Err())
	}
	pass, err := g.cache.Get(ctx, grid)
	if err != nil {
		return nil, fmt.Errorf("Initialize: %w", err)
	}
	s, err := simulation.New(pass)
	if err != nil {
		return nil, fmt.Errorf("Initialize: %w", err)
	}

	g.mu.Lock()
	g.session = s
	m := s.Map()
	g.mu.Unlock()

	g.log.Info("session initialized", "size", size, "tiles", grid.TileCount)

	return m, nil
}

// ApplyMove scans tile (1-based) in the current session.
func (g *Game) ApplyMove(tile int) simulation.MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.session == nil {
		g.log.Debug("move rejected", "tile", tile, "reason", simulation.NotInitialized)
		return simulation.Rejected(simulation.NotInitialized)
	}
	res := g.session.Move(tile)
	if !res.Accepted {
		g.log.Debug("move rejected", "tile", tile, "reason", res.Reason)
		return res
	}
	g.log.Info("move applied",
		"tile", tile,
		"selected", len(g.session.Selected()),
		"complete", g.session.Complete())

	return res
}

// QueryStatus returns the derived view of the current session. ok is
// false when no session exists.
func (g *Game) QueryStatus() (simulation.Status, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.session == nil {
		return simulation.Status{}, false
	}

	return g.session.Status(), true
}

// Snapshot is a consistent read of everything a front-end draws.
type Snapshot struct {
	Grid     geometry.Grid
	Size     int
	Status   simulation.Status
	Selected []int
	Ambient  float64
	Melt     float64
}

// Snapshot reads the current session under one read lock. ok is false
// when no session exists.
func (g *Game) Snapshot() (Snapshot, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.session == nil {
		return Snapshot{}, false
	}
	grid := g.session.Grid()

	return Snapshot{
		Grid:     grid,
		Size:     grid.Size,
		Status:   g.session.Status(),
		Selected: g.session.Selected(),
		Ambient:  grid.Material.AmbientTemp,
		Melt:     grid.Material.MeltTemp,
	}, true
}

// FineField returns the full fine temperature field, or nil without a
// session.
func (g *Game) FineField() [][]float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.session == nil {
		return nil
	}

	return g.session.FineField()
}
