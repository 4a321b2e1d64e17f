// SPDX-License-Identifier: MIT
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrUnknownSession indicates a registry lookup for an id that is not
// registered or not a valid uuid.
var ErrUnknownSession = errors.New("game: unknown session")

// ErrRegistryFull indicates Create was refused because the registry holds
// its limit of named games.
var ErrRegistryFull = errors.New("game: session limit reached")

// Registry keys independent games by uuid. It always holds one default
// game for callers that do not name a session.
type Registry struct {
	mu      sync.RWMutex
	games   map[uuid.UUID]*Game
	factory func() *Game
	def     *Game
	limit   int
}

// NewRegistry returns a registry whose games are produced by factory.
// limit caps the number of named games; 0 means unlimited.
func NewRegistry(factory func() *Game, limit int) *Registry {
	if limit < 0 {
		panic(fmt.Sprintf("game: NewRegistry limit must be >= 0, got %d", limit))
	}
	return &Registry{
		games:   make(map[uuid.UUID]*Game),
		factory: factory,
		def:     factory(),
		limit:   limit,
	}
}

// Default returns the game used when no session id is given.
func (r *Registry) Default() *Game { return r.def }

// Create registers a new empty game and returns its id. It fails with
// ErrRegistryFull once the limit is reached.
func (r *Registry) Create() (uuid.UUID, *Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limit > 0 && len(r.games) >= r.limit {
		return uuid.Nil, nil, fmt.Errorf("Create: %d games: %w", len(r.games), ErrRegistryFull)
	}
	id := uuid.New()
	g := r.factory()
	r.games[id] = g

	return id, g, nil
}

// Get returns the game registered under id.
func (r *Registry) Get(id uuid.UUID) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	return g, ok
}

// Lookup resolves a textual id. An empty id yields the default game.
func (r *Registry) Lookup(id string) (*Game, error) {
	if id == "" {
		return r.def, nil
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("Lookup %q: %w", id, ErrUnknownSession)
	}
	g, ok := r.Get(u)
	if !ok {
		return nil, fmt.Errorf("Lookup %s: %w", u, ErrUnknownSession)
	}

	return g, nil
}

// Delete drops the game registered under id and reports whether it existed.
// The default game cannot be deleted.
func (r *Registry) Delete(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.games[id]
	delete(r.games, id)
	return ok
}

// Len returns the number of named games (the default game excluded).
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.games)
}
