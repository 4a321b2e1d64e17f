// SPDX-License-Identifier: MIT
package game

import (
	"log/slog"

	"github.com/katalvlaran/heatscan/geometry"
)

// Default values applied when no Option overrides them.
const (
	// DefaultMaxSize caps boards built by a Game; 0 disables the cap.
	DefaultMaxSize = 0
)

const (
	panicMaxSizeInvalid = "game: WithMaxSize: size must be >= 0"
	panicCacheNil       = "game: WithCache: cache must not be nil"
)

// Option configures a Game. Constructors panic only on programmer error.
type Option func(*options)

type options struct {
	material geometry.Material
	maxSize  int
	cache    *OperatorCache
	logger   *slog.Logger
}

func gatherOptions(opts ...Option) options {
	o := options{
		material: geometry.DefaultMaterial(),
		maxSize:  DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithMaterial sets the physical constants of new sessions. The material
// is validated by Initialize.
func WithMaterial(m geometry.Material) Option {
	return func(o *options) { o.material = m }
}

// WithMaxSize rejects Initialize calls above n with
// simulation.ErrInvalidConfiguration. Operator memory grows as n⁴.
func WithMaxSize(n int) Option {
	if n < 0 {
		panic(panicMaxSizeInvalid)
	}

	return func(o *options) { o.maxSize = n }
}

// WithCache shares an operator cache between games.
func WithCache(c *OperatorCache) Option {
	if c == nil {
		panic(panicCacheNil)
	}

	return func(o *options) { o.cache = c }
}

// WithLogger routes session events to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}
