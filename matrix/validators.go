// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep algorithms minimal by delegating shape/nil/stochasticity checks here.
//  - Wrap sentinels with the validator tag so call sites can match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Row-stochastic check runs O(r*c) and reports the FIRST offending cell/row
//    in row-major order.
//
// Note:
//  - Each composite validator follows a fixed sequence (NotNil → Square → Finite →
//    NonNegative → RowSum) matching the priority documented in errors.go.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
//
// Errors: ErrNilMatrix if nil, ErrDimensionMismatch if not square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects any NaN or ±Inf entry.
// Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, _ = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateFinite(%d,%d)", i, j), ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateRowStochastic checks that m is a transition matrix: square, finite,
// non-negative, and every row summing to 1 within the configured epsilon.
//
// Implementation:
//   - Stage 1: ValidateSquare.
//   - Stage 2: per row, scan entries for NaN/Inf and negatives (exact, no tolerance:
//     a tiny negative is still a structural violation).
//   - Stage 3: compare the row sum with 1 using |sum-1| <= eps.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf, ErrNegativeEntry, ErrRowSum.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func ValidateRowStochastic(m Matrix, opts ...Option) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	o := gatherOptions(opts...)

	var (
		n    = m.Rows()
		row  []float64
		i, j int
		v, s float64
	)
	d, fast := m.(*Dense)
	for i = 0; i < n; i++ {
		if fast {
			row = d.rowView(i)
		} else {
			row = make([]float64, n)
			for j = 0; j < n; j++ {
				row[j], _ = m.At(i, j)
			}
		}
		s = 0
		for j, v = range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("ValidateRowStochastic(%d,%d)", i, j), ErrNaNInf)
			}
			if v < 0 {
				return validatorErrorf(fmt.Sprintf("ValidateRowStochastic(%d,%d)", i, j), ErrNegativeEntry)
			}
			s += v
		}
		// NaN sums fail this comparison as well.
		if !(math.Abs(s-1) <= o.eps) {
			return validatorErrorf(fmt.Sprintf("ValidateRowStochastic: row %d sums to %g", i, s), ErrRowSum)
		}
	}

	return nil
}
