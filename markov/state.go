// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"
)

// State is a point in Rⁿ. Scalar processes use one-element states.
// States are kept in trajectory order; equal values at different indices
// are distinct states.
type State []float64

// Clone returns an independent copy of s.
func (s State) Clone() State { return append(State(nil), s...) }

// Scalars wraps a scalar sequence as one-dimensional states.
func Scalars(xs ...float64) []State {
	out := make([]State, len(xs))
	for i, x := range xs {
		out[i] = State{x}
	}
	return out
}

// validateStates checks the shared-dimension and finiteness invariants and
// returns a deep copy, so a chain never aliases caller memory.
func validateStates(op string, xs []State, maxStates int) ([]State, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyTrajectory)
	}
	if len(xs) > maxStates {
		return nil, fmt.Errorf("%s: %d states, limit %d: %w", op, len(xs), maxStates, ErrTooManyStates)
	}
	dim := len(xs[0])
	if dim == 0 {
		return nil, fmt.Errorf("%s: state 0 is empty: %w", op, ErrDimensionMismatch)
	}

	own := make([]State, len(xs))
	for i, x := range xs {
		if len(x) != dim {
			return nil, fmt.Errorf("%s: state %d has dim %d, want %d: %w", op, i, len(x), dim, ErrDimensionMismatch)
		}
		for _, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%s: state %d is not finite: %w", op, i, ErrDimensionMismatch)
			}
		}
		own[i] = x.Clone()
	}

	return own, nil
}

// pathStates maps an index path to state copies.
func pathStates(states []State, path []int) []State {
	out := make([]State, len(path))
	for i, k := range path {
		out[i] = states[k].Clone()
	}
	return out
}
