// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Single source of truth for shape and nil checks used by every kernel.
//   - Return tagged sentinels so call sites can wrap uniformly.
//
// Note:
//   - Composite validators follow a fixed sequence (NotNil → Shape).

package sparse

import (
	"fmt"
	"math"
)

// validatorErrorf tags err with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures m is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *CSC) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape – Composite: NotNil(a) → NotNil(b) → equal dimensions.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateSameShape(a, b *CSC) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare – Composite: NotNil → Rows == Cols.
// Complexity: O(1).
func ValidateSquare(m *CSC) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures both operands exist and a.Cols == b.Rows.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: O(1).
func ValidateMulCompatible(a, b *CSC) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulCompatible", ErrNilMatrix)
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has exactly n entries.
// Time: O(1). Space: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix) // nil vector reuses the nil sentinel
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in vals.
// Time: O(len(vals)).
func ValidateFinite(vals []float64) error {
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf(fmt.Sprintf("ValidateFinite[%d]", i), ErrNaNInf)
		}
	}

	return nil
}
