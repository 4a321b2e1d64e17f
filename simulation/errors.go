// SPDX-License-Identifier: MIT
package simulation

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/heatscan/geometry"
)

var (
	// ErrInvalidConfiguration indicates an unusable board size or material.
	ErrInvalidConfiguration = geometry.ErrInvalidConfiguration

	// ErrNotInitialized indicates a move or query before any session exists.
	ErrNotInitialized = errors.New("simulation: no active session")

	// ErrAlreadySelected indicates a tile that was already scanned.
	ErrAlreadySelected = errors.New("simulation: tile already selected")

	// ErrOutOfRange indicates a tile index outside [1, TileCount].
	ErrOutOfRange = errors.New("simulation: tile index out of range")
)

// Reason classifies the outcome of a move.
type Reason int

const (
	// Ok means the move was applied.
	Ok Reason = iota
	// AlreadySelected means the tile was scanned earlier in the session.
	AlreadySelected
	// OutOfRange means the index lies outside [1, TileCount].
	OutOfRange
	// NotInitialized means there was no session to move in.
	NotInitialized
)

var reasonNames = [...]string{
	Ok:              "ok",
	AlreadySelected: "already_selected",
	OutOfRange:      "out_of_range",
	NotInitialized:  "not_initialized",
}

var reasonMessages = [...]string{
	Ok:              "Move accepted",
	AlreadySelected: "Tile already selected",
	OutOfRange:      "Invalid tile index",
	NotInitialized:  "No active simulation",
}

func (r Reason) valid() bool { return r >= Ok && r <= NotInitialized }

// String returns the snake_case name used on the wire.
func (r Reason) String() string {
	if !r.valid() {
		return fmt.Sprintf("reason(%d)", int(r))
	}

	return reasonNames[r]
}

// Message returns a short human-readable description.
func (r Reason) Message() string {
	if !r.valid() {
		return r.String()
	}

	return reasonMessages[r]
}

// Err maps r to its sentinel; Ok yields nil.
func (r Reason) Err() error {
	switch r {
	case Ok:
		return nil
	case AlreadySelected:
		return ErrAlreadySelected
	case OutOfRange:
		return ErrOutOfRange
	case NotInitialized:
		return ErrNotInitialized
	default:
		return fmt.Errorf("simulation: unknown %s", r)
	}
}

// MarshalText encodes r by name.
func (r Reason) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("simulation: unknown %s", r)
	}

	return []byte(reasonNames[r]), nil
}

// UnmarshalText decodes a name produced by MarshalText.
func (r *Reason) UnmarshalText(b []byte) error {
	for i, name := range reasonNames {
		if name == string(b) {
			*r = Reason(i)
			return nil
		}
	}

	return fmt.Errorf("simulation: unknown reason %q", b)
}

// MoveResult reports whether a move was applied and why not.
type MoveResult struct {
	Accepted bool   `json:"accepted"`
	Reason   Reason `json:"reason"`
}

func accepted() MoveResult { return MoveResult{Accepted: true, Reason: Ok} }

// Rejected returns a refusal carrying reason r.
func Rejected(r Reason) MoveResult { return MoveResult{Reason: r} }

// Err returns the sentinel behind a rejection, or nil when accepted.
func (m MoveResult) Err() error { return m.Reason.Err() }
