// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// All kernels return these sentinels (optionally wrapped with an operation
// tag via sparseErrorf); tests match them with errors.Is. Public entry
// points never panic on user-triggered conditions, with the single
// exception of At, which follows the gonum mat.Matrix contract.

package sparse

import "errors"

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("sparse: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes
	// (Add with different shapes, Mul with a.Cols != b.Rows, vector length).
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrNilMatrix indicates that a nil matrix or vector was passed.
	ErrNilMatrix = errors.New("sparse: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrCorruptStructure signals inconsistent colPtr/rowIdx/data arrays
	// handed to NewCSC (unsorted rows, bad pointers, length mismatch).
	ErrCorruptStructure = errors.New("sparse: corrupt compressed structure")
)
