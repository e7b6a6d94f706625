// SPDX-License-Identifier: MIT

package dynamics

import "errors"

var (
	// ErrTooFewStates: a chain or trajectory size is below its minimum.
	ErrTooFewStates = errors.New("dynamics: parameter too small")

	// ErrInvalidProbability: a probability is outside [0,1] or not finite.
	ErrInvalidProbability = errors.New("dynamics: probability out of range")

	// ErrDimensionMismatch: the initial condition does not match the drift.
	ErrDimensionMismatch = errors.New("dynamics: dimension mismatch")

	// ErrDiverged: the integrated path left the finite range.
	ErrDiverged = errors.New("dynamics: trajectory diverged")
)
