// SPDX-License-Identifier: MIT
package game_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heatscan/game"
	"github.com/katalvlaran/heatscan/geometry"
	"github.com/katalvlaran/heatscan/logging"
	"github.com/katalvlaran/heatscan/operator"
	"github.com/katalvlaran/heatscan/simulation"
)

func newGame(opts ...game.Option) *game.Game {
	return game.New(append([]game.Option{game.WithLogger(logging.Discard())}, opts...)...)
}

// TestQueryStatusBeforeInitialize verifies the empty result without a
// session.
func TestQueryStatusBeforeInitialize(t *testing.T) {
	g := newGame()
	st, ok := g.QueryStatus()
	require.False(t, ok)
	require.Equal(t, simulation.Status{}, st)

	_, ok = g.Snapshot()
	require.False(t, ok)
	require.Nil(t, g.FineField())
}

// TestApplyMoveBeforeInitialize verifies NotInitialized is a result, not
// an error.
func TestApplyMoveBeforeInitialize(t *testing.T) {
	res := newGame().ApplyMove(1)
	require.False(t, res.Accepted)
	require.Equal(t, simulation.NotInitialized, res.Reason)
	require.ErrorIs(t, res.Err(), simulation.ErrNotInitialized)
}

// TestInitializeRejectsBadSize covers the lower bound and the cap.
func TestInitializeRejectsBadSize(t *testing.T) {
	g := newGame(game.WithMaxSize(3))
	for _, size := range []int{0, -2, 4} {
		_, err := g.Initialize(context.Background(), size)
		require.ErrorIs(t, err, simulation.ErrInvalidConfiguration, "size %d", size)
	}

	bad := geometry.DefaultMaterial()
	bad.Density = -1
	_, err := newGame(game.WithMaterial(bad)).Initialize(context.Background(), 2)
	require.ErrorIs(t, err, simulation.ErrInvalidConfiguration)
}

// TestInitializeFailureKeepsSession verifies a failed re-initialize does
// not discard the running session.
func TestInitializeFailureKeepsSession(t *testing.T) {
	g := newGame(game.WithMaxSize(2))
	_, err := g.Initialize(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, g.ApplyMove(1).Accepted)

	_, err = g.Initialize(context.Background(), 5)
	require.Error(t, err)

	snap, ok := g.Snapshot()
	require.True(t, ok)
	require.Equal(t, []int{1}, snap.Selected)
}

// TestScenario walks the canonical 2×2 game through the host slot.
func TestScenario(t *testing.T) {
	g := newGame()
	m, err := g.Initialize(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, m, 2)
	for _, row := range m {
		require.Len(t, row, 2)
		for _, v := range row {
			require.InDelta(t, 293.0, v, 1e-9)
		}
	}

	require.True(t, g.ApplyMove(1).Accepted)
	require.Equal(t, simulation.Rejected(simulation.AlreadySelected), g.ApplyMove(1))
	require.Equal(t, simulation.Rejected(simulation.OutOfRange), g.ApplyMove(0))

	st, ok := g.QueryStatus()
	require.True(t, ok)
	require.False(t, st.Complete)

	for _, tile := range []int{2, 3, 4} {
		require.True(t, g.ApplyMove(tile).Accepted)
	}
	st, ok = g.QueryStatus()
	require.True(t, ok)
	require.True(t, st.Complete)
	require.Greater(t, st.Accuracy, 0.0)
}

// TestInitializeDiscardsPreviousSession verifies re-initialization starts
// over, possibly with another size.
func TestInitializeDiscardsPreviousSession(t *testing.T) {
	g := newGame()
	_, err := g.Initialize(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, g.ApplyMove(4).Accepted)

	m, err := g.Initialize(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, m, 3)
	snap, ok := g.Snapshot()
	require.True(t, ok)
	require.Equal(t, 3, snap.Size)
	require.Empty(t, snap.Selected)
	require.True(t, g.ApplyMove(4).Accepted)
	require.Len(t, g.FineField(), 9)
}

// TestConcurrentMovesAreSerialized fires every tile from its own
// goroutine together with readers; each tile must be accepted exactly once.
func TestConcurrentMovesAreSerialized(t *testing.T) {
	g := newGame()
	_, err := g.Initialize(context.Background(), 3)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]simulation.MoveResult, 18)
	for i := range results {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			results[i] = g.ApplyMove(i%9 + 1)
		}(i)
		go func() {
			defer wg.Done()
			st, ok := g.QueryStatus()
			if ok && st.Accuracy < 0 {
				t.Error("negative accuracy")
			}
		}()
	}
	wg.Wait()

	accepted := 0
	for _, r := range results {
		if r.Accepted {
			accepted++
		} else {
			require.Equal(t, simulation.AlreadySelected, r.Reason)
		}
	}
	require.Equal(t, 9, accepted)
	st, _ := g.QueryStatus()
	require.True(t, st.Complete)
}

// TestInitializeIsSerialized verifies Initialize waits for an earlier call
// to finish and still honours its own context while waiting.
func TestInitializeIsSerialized(t *testing.T) {
	g := newGame()
	release := game.HoldInit(g)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.Initialize(ctx, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	_, ok := g.QueryStatus()
	require.False(t, ok)

	done := make(chan error, 1)
	go func() {
		_, err := g.Initialize(context.Background(), 2)
		done <- err
	}()
	select {
	case <-done:
		t.Fatal("Initialize ran while another call held the slot")
	case <-time.After(20 * time.Millisecond):
	}
	release()
	require.NoError(t, <-done)
	snap, ok := g.Snapshot()
	require.True(t, ok)
	require.Equal(t, 2, snap.Size)
}

// TestSharedCacheReusesPass verifies two games of one size share a build.
func TestSharedCacheReusesPass(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewLogger("debug", &buf)
	cache := game.NewOperatorCache(log)

	a := game.New(game.WithCache(cache), game.WithLogger(log))
	b := game.New(game.WithCache(cache), game.WithLogger(log))
	_, err := a.Initialize(context.Background(), 2)
	require.NoError(t, err)
	_, err = b.Initialize(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 1, cache.Len())
	require.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("operator built")))

	// sessions stay independent
	require.True(t, a.ApplyMove(1).Accepted)
	require.True(t, b.ApplyMove(1).Accepted)
}

// TestCacheCancelledCallerLeavesNothing verifies a caller that is already
// cancelled neither builds nor caches.
func TestCacheCancelledCallerLeavesNothing(t *testing.T) {
	cache := game.NewOperatorCache(logging.Discard())
	grid, err := geometry.New(2, geometry.DefaultMaterial())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cache.Get(ctx, grid)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, cache.Len())

	ps, err := cache.Get(context.Background(), grid)
	require.NoError(t, err)
	again, err := cache.Get(context.Background(), grid)
	require.NoError(t, err)
	require.Same(t, ps, again)
}

type getResult struct {
	pass *operator.Pass
	err  error
}

func getAsync(ctx context.Context, cache *game.OperatorCache, grid geometry.Grid) <-chan getResult {
	out := make(chan getResult, 1)
	go func() {
		ps, err := cache.Get(ctx, grid)
		out <- getResult{pass: ps, err: err}
	}()
	return out
}

// TestCacheBuildSurvivesFirstCallerCancel verifies a waiter with a live
// context still gets the pass when the caller that started the build
// goes away.
func TestCacheBuildSurvivesFirstCallerCancel(t *testing.T) {
	cache := game.NewOperatorCache(logging.Discard())
	grid, err := geometry.New(5, geometry.DefaultMaterial())
	require.NoError(t, err)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	resA := getAsync(ctxA, cache, grid)
	require.Eventually(t, func() bool { return cache.Waiters(grid) == 1 }, 5*time.Second, time.Millisecond)

	resB := getAsync(context.Background(), cache, grid)
	require.Eventually(t, func() bool { return cache.Waiters(grid) == 2 }, 5*time.Second, time.Millisecond)
	cancelA()

	a := <-resA
	if a.err != nil {
		require.ErrorIs(t, a.err, context.Canceled)
	}
	b := <-resB
	require.NoError(t, b.err)
	require.NotNil(t, b.pass)
	require.Equal(t, 1, cache.Len())

	again, err := cache.Get(context.Background(), grid)
	require.NoError(t, err)
	require.Same(t, b.pass, again)
}

// TestCacheAbandonedBuildIsDropped verifies the build is forgotten when its
// only waiter leaves, so the next caller starts over.
func TestCacheAbandonedBuildIsDropped(t *testing.T) {
	cache := game.NewOperatorCache(logging.Discard())
	grid, err := geometry.New(5, geometry.DefaultMaterial())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	res := getAsync(ctx, cache, grid)
	require.Eventually(t, func() bool { return cache.Waiters(grid) == 1 }, 5*time.Second, time.Millisecond)
	cancel()

	if r := <-res; r.err != nil {
		require.ErrorIs(t, r.err, context.Canceled)
		require.Zero(t, cache.Len())
	}

	ps, err := cache.Get(context.Background(), grid)
	require.NoError(t, err)
	require.NotNil(t, ps)
}

// TestCacheLogsStatsAtTrace verifies sparsity statistics only appear at
// trace verbosity.
func TestCacheLogsStatsAtTrace(t *testing.T) {
	grid, err := geometry.New(2, geometry.DefaultMaterial())
	require.NoError(t, err)

	for _, tc := range []struct {
		level string
		stats bool
	}{
		{"debug", false},
		{"trace", true},
	} {
		t.Run(tc.level, func(t *testing.T) {
			var buf bytes.Buffer
			cache := game.NewOperatorCache(logging.NewLogger(tc.level, &buf))
			_, err := cache.Get(context.Background(), grid)
			require.NoError(t, err)

			out := buf.String()
			require.Contains(t, out, "operator built")
			require.Equal(t, tc.stats, strings.Contains(out, "transition_nnz"))
		})
	}
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { game.WithMaxSize(-1) })
	require.Panics(t, func() { game.WithCache(nil) })
}
