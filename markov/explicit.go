// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/stochrare/matrix"
)

const (
	opNewExplicit = "NewExplicit"
	opExplicitSim = "ExplicitChain.Simulate"
	opExplicitStp = "ExplicitChain.Step"
)

// ExplicitChain is a Markov chain given by its states and a row-stochastic
// transition matrix. It is immutable after construction.
type ExplicitChain struct {
	states []State
	g      *matrix.Dense
	opts   options
}

// NewExplicit validates and copies states and g.
//
// Implementation:
//   - Stage 1: states non-empty, shared dimension, finite, N <= MaxStates.
//   - Stage 2: g is N×N (ErrDimensionMismatch).
//   - Stage 3: g is row-stochastic within eps (ErrInvalidStochasticRow).
//
// Complexity: O(N²).
func NewExplicit(states []State, g matrix.Matrix, opts ...Option) (*ExplicitChain, error) {
	o := gatherOptions(opts...)
	own, err := validateStates(opNewExplicit, states, o.maxStates)
	if err != nil {
		return nil, err
	}
	if err = matrix.ValidateNotNil(g); err != nil {
		return nil, wrapf(opNewExplicit, "%w: %w", err, ErrDimensionMismatch)
	}
	n := len(own)
	if g.Rows() != n || g.Cols() != n {
		return nil, wrapf(opNewExplicit, "%d states vs %dx%d matrix: %w", n, g.Rows(), g.Cols(), ErrDimensionMismatch)
	}
	if err = matrix.ValidateRowStochastic(g, matrix.WithEpsilon(o.eps)); err != nil {
		return nil, wrapf(opNewExplicit, "%w: %w", err, ErrInvalidStochasticRow)
	}

	cp, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewExplicit, err)
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, _ = g.At(i, j)
			_ = cp.Set(i, j, v)
		}
	}
	o.debug("explicit chain built", "states", n, "dim", len(own[0]))

	return &ExplicitChain{states: own, g: cp, opts: o}, nil
}

// Len returns the number of states.
func (c *ExplicitChain) Len() int { return len(c.states) }

// States returns copies of the states in index order.
func (c *ExplicitChain) States() []State {
	out := make([]State, len(c.states))
	for i, s := range c.states {
		out[i] = s.Clone()
	}
	return out
}

// TransitionMatrix returns a copy of the transition matrix.
func (c *ExplicitChain) TransitionMatrix() *matrix.Dense {
	return c.g.Clone().(*matrix.Dense)
}

// Step draws the next index from row current.
// Complexity: O(N) (row copy + categorical setup).
func (c *ExplicitChain) Step(r *rand.Rand, current int) (int, error) {
	if current < 0 || current >= len(c.states) {
		return 0, wrapf(opExplicitStp, "current=%d: %w", current, ErrIndexOutOfRange)
	}
	row, _ := c.g.Row(current)
	cat := distuv.NewCategorical(row, orDefault(r))
	return int(cat.Rand()), nil
}

// SimulateIndices samples steps transitions starting at start.
// Each row's categorical distribution is built once per call.
//
// Complexity: O(steps·log N + distinct rows visited·N).
func (c *ExplicitChain) SimulateIndices(r *rand.Rand, start, steps int) ([]int, error) {
	r = orDefault(r)
	rows := make(map[int]distuv.Categorical)
	return walk(opExplicitSim, len(c.states), r, start, steps, func(r *rand.Rand, cur int) (int, error) {
		cat, ok := rows[cur]
		if !ok {
			row, _ := c.g.Row(cur)
			cat = distuv.NewCategorical(row, r)
			rows[cur] = cat
		}
		return int(cat.Rand()), nil
	})
}

// Simulate returns the visited states, steps+1 of them including states[start].
func (c *ExplicitChain) Simulate(r *rand.Rand, start, steps int) ([]State, error) {
	path, err := c.SimulateIndices(r, start, steps)
	if err != nil {
		return nil, err
	}
	return pathStates(c.states, path), nil
}

// Committor solves the committor problem on this chain with the chain's options.
func (c *ExplicitChain) Committor(a, b []int) (*Committor, error) {
	return solveCommittor(c.g, a, b, c.opts)
}
