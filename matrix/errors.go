// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All functions MUST return these sentinels (optionally wrapped with
// %w) and tests MUST check them via errors.Is. No function panics on
// user-triggered error conditions; panics are reserved for option
// constructors receiving nonsensical values (programmer error).

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Context is
// attached at the detection site with fmt.Errorf("Op: ...: %w", ErrX).
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape -> NaN/Inf -> negative entry -> row sum.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions, e.g. ragged rows
	// passed to NewDenseFromRows or a non-square transition matrix.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNegativeEntry signals a strictly negative entry where a probability
	// (or any non-negative weight) is required.
	ErrNegativeEntry = errors.New("matrix: negative entry")

	// ErrRowSum signals that a row of a stochastic matrix does not sum to 1
	// within the configured epsilon.
	ErrRowSum = errors.New("matrix: row does not sum to 1")

	// ErrEigenFailed indicates that the eigen decomposition did not converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
