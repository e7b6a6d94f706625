// SPDX-License-Identifier: MIT

package markov

import (
	"math/rand/v2"

	"github.com/katalvlaran/stochrare/matrix"
)

// Stepper is the one-step primitive external drivers (e.g. a multilevel
// splitting sampler) need: given the current state index, draw the next.
type Stepper interface {
	// Len returns the number of states.
	Len() int
	// Step draws the index of the next state. A nil r uses the default stream.
	Step(r *rand.Rand, current int) (int, error)
}

// Chain is the capability shared by ExplicitChain and AnalogueChain.
// The construction path picks the variant; callers program against Chain.
type Chain interface {
	Stepper

	// States returns copies of the states in index order.
	States() []State

	// TransitionMatrix returns a copy of the N×N row-stochastic matrix.
	TransitionMatrix() *matrix.Dense

	// Simulate returns steps+1 states starting at states[start].
	Simulate(r *rand.Rand, start, steps int) ([]State, error)

	// SimulateIndices is Simulate returning state indices.
	SimulateIndices(r *rand.Rand, start, steps int) ([]int, error)

	// Committor solves the committor problem for absorbing sets a (value 0)
	// and b (value 1).
	Committor(a, b []int) (*Committor, error)
}

// Compile-time conformance.
var (
	_ Chain = (*ExplicitChain)(nil)
	_ Chain = (*AnalogueChain)(nil)
)

// walk runs steps applications of step from start. Shared by both variants.
func walk(op string, n int, r *rand.Rand, start, steps int, step func(*rand.Rand, int) (int, error)) ([]int, error) {
	if err := checkWalk(op, n, start, steps); err != nil {
		return nil, err
	}
	r = orDefault(r)

	path := make([]int, 1, steps+1)
	path[0] = start
	cur := start
	for t := 0; t < steps; t++ {
		next, err := step(r, cur)
		if err != nil {
			return nil, err
		}
		path = append(path, next)
		cur = next
	}

	return path, nil
}

func checkWalk(op string, n, start, steps int) error {
	if steps < 0 {
		return wrapf(op, "steps=%d: %w", steps, ErrNegativeSteps)
	}
	if start < 0 || start >= n {
		return wrapf(op, "start=%d of %d states: %w", start, n, ErrIndexOutOfRange)
	}
	return nil
}
