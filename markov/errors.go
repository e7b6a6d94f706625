// SPDX-License-Identifier: MIT
// Package markov: sentinel error set.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Context is attached at the detection site with fmt.Errorf("Op: ...: %w", ErrX).
//   - Every check is eager: errors are raised before any linear algebra or
//     sampling starts. None of them is transient, nothing is retried.

package markov

import "errors"

var (
	// ErrDimensionMismatch: the state list and the transition matrix disagree
	// in size, or states do not share one dimensionality.
	ErrDimensionMismatch = errors.New("markov: dimension mismatch")

	// ErrInvalidStochasticRow: a transition-matrix row is negative, non-finite
	// or does not sum to 1 within tolerance.
	ErrInvalidStochasticRow = errors.New("markov: transition matrix row is not stochastic")

	// ErrDegenerateNeighborhood: K is too large for the trajectory, or a
	// neighbourhood leaves no admissible analogue once the final (sentinel)
	// state is excluded (K=1 next to the sentinel).
	ErrDegenerateNeighborhood = errors.New("markov: degenerate analogue neighbourhood")

	// ErrPartitionOverlap: the committor sets share an index, one is empty, or
	// together they cover every state.
	ErrPartitionOverlap = errors.New("markov: invalid committor partition")

	// ErrIllConditionedAbsorption: the reduced chain does not have exactly two
	// eigenvalue-1 eigenvectors, or the boundary system built from them is
	// (nearly) singular.
	ErrIllConditionedAbsorption = errors.New("markov: ill-conditioned absorption problem")

	// ErrNoUniqueStationary: the chain has no single eigenvalue-1 left
	// eigenvector, so its stationary distribution is not unique.
	ErrNoUniqueStationary = errors.New("markov: stationary distribution is not unique")

	// ErrTooManyStates: the state count exceeds the configured maximum.
	ErrTooManyStates = errors.New("markov: too many states")

	// ErrEmptyTrajectory: no states were given.
	ErrEmptyTrajectory = errors.New("markov: empty trajectory")

	// ErrIndexOutOfRange: a start index or partition index is outside 0..N-1.
	ErrIndexOutOfRange = errors.New("markov: state index out of range")

	// ErrNegativeSteps: a simulation was asked for fewer than zero steps.
	ErrNegativeSteps = errors.New("markov: negative step count")
)
