// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/stochrare/matrix"
	"github.com/katalvlaran/stochrare/spatial"
)

const (
	opNewAnalogue  = "NewAnalogue"
	opAnalogueStep = "AnalogueChain.Step"
	opAnalogueSim  = "AnalogueChain.Simulate"
	opAnalogueFrom = "AnalogueChain.SimulateFrom"
)

// AnalogueChain is a Markov chain estimated from a single observed
// trajectory x[0..N-1].
//
// Indexing scheme: the analogues of state n are its K nearest neighbours
// among the stored states (n itself excluded). The chain moves from n to the
// recorded successor j+1 of a uniformly chosen analogue j, so the transition
// matrix entry for analogue j is written at column j+1. The last state N-1
// (the sentinel) has no recorded successor and is never used as an analogue;
// as a consequence column 0 (no state has successor 0) is always zero.
type AnalogueChain struct {
	states []State
	k      int
	index  *spatial.Index
	g      *matrix.Dense
	opts   options
}

// NewAnalogue builds the analogue chain of trajectory x with k analogues.
//
// Implementation:
//   - Stage 1: validate k >= 1, N >= k+2, states (shared dim, finite, N <= MaxStates).
//   - Stage 2: build the spatial index over x.
//   - Stage 3: per state n, take its k analogues; weight 1/k each, or 1/(k-1)
//     for the non-sentinel ones when the sentinel is among them.
//   - Stage 4: verify row-stochasticity of the result.
//
// Errors:
//   - ErrDegenerateNeighborhood for k < 1, N < k+2, or k = 1 with the sentinel
//     as the only analogue of some state.
//   - ErrEmptyTrajectory, ErrDimensionMismatch, ErrTooManyStates from state validation.
//   - ErrInvalidStochasticRow if the post-condition fails.
//
// Complexity: O(N·(log N + k)) expected queries, O(N²) memory for the matrix.
func NewAnalogue(x []State, k int, opts ...Option) (*AnalogueChain, error) {
	o := gatherOptions(opts...)
	if k < 1 {
		return nil, wrapf(opNewAnalogue, "k=%d: %w", k, ErrDegenerateNeighborhood)
	}
	own, err := validateStates(opNewAnalogue, x, o.maxStates)
	if err != nil {
		return nil, err
	}
	n := len(own)
	if n < k+2 {
		return nil, wrapf(opNewAnalogue, "k=%d needs at least %d states, got %d: %w", k, k+2, n, ErrDegenerateNeighborhood)
	}

	pts := make([][]float64, n)
	for i, s := range own {
		pts[i] = s
	}
	idx, err := spatial.NewIndex(pts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewAnalogue, err)
	}
	g, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNewAnalogue, err)
	}

	c := &AnalogueChain{states: own, k: k, index: idx, g: g, opts: o}

	var (
		row       int
		cands     []int
		sentinel  = n - 1
		truncated int // rows whose neighbourhood contained the sentinel
		w         float64
	)
	for row = 0; row < n; row++ {
		cands, err = c.analogues(own[row], row)
		if err != nil {
			return nil, err
		}
		w = 1 / float64(k)
		if contains(cands, sentinel) {
			if k == 1 {
				return nil, wrapf(opNewAnalogue, "state %d: only analogue is the final state: %w", row, ErrDegenerateNeighborhood)
			}
			w = 1 / float64(k-1)
			truncated++
		}
		for _, j := range cands {
			if j == sentinel {
				continue
			}
			_ = g.Set(row, j+1, w)
		}
	}

	if err = matrix.ValidateRowStochastic(g, matrix.WithEpsilon(o.eps)); err != nil {
		return nil, wrapf(opNewAnalogue, "%w: %w", err, ErrInvalidStochasticRow)
	}
	o.debug("analogue chain built",
		"states", n, "dim", idx.Dims(), "k", k, "sentinel_rows", truncated)

	return c, nil
}

// analogues returns the k analogue indices of q. When q is the stored state
// self, k+1 neighbours are queried and self is removed; if duplicates of q
// pushed self out of the answer, the farthest candidate is dropped instead.
// With self < 0, q is an arbitrary point and exactly k neighbours are used.
func (c *AnalogueChain) analogues(q State, self int) ([]int, error) {
	want := c.k
	if self >= 0 {
		want++
	}
	ids, err := c.index.QueryIndices(q, want)
	if err != nil {
		return nil, wrapf("neighbours", "%w: %w", err, ErrDegenerateNeighborhood)
	}
	if self < 0 {
		return ids, nil
	}
	for i, id := range ids {
		if id == self {
			return append(ids[:i], ids[i+1:]...), nil
		}
	}

	return ids[:len(ids)-1], nil
}

// admissible drops the sentinel from cands (in place).
func (c *AnalogueChain) admissible(cands []int) []int {
	sentinel := len(c.states) - 1
	out := cands[:0]
	for _, j := range cands {
		if j != sentinel {
			out = append(out, j)
		}
	}
	return out
}

// next draws the successor of a uniformly chosen admissible analogue of q.
func (c *AnalogueChain) next(op string, r *rand.Rand, q State, self int) (int, error) {
	cands, err := c.analogues(q, self)
	if err != nil {
		return 0, err
	}
	cands = c.admissible(cands)
	if len(cands) == 0 {
		return 0, wrapf(op, "k=%d leaves no analogue besides the final state: %w", c.k, ErrDegenerateNeighborhood)
	}
	return cands[r.IntN(len(cands))] + 1, nil
}

// K returns the number of analogues.
func (c *AnalogueChain) K() int { return c.k }

// Len returns the number of states.
func (c *AnalogueChain) Len() int { return len(c.states) }

// Index returns the read-only neighbour index over the stored states.
func (c *AnalogueChain) Index() *spatial.Index { return c.index }

// States returns copies of the states in trajectory order.
func (c *AnalogueChain) States() []State {
	out := make([]State, len(c.states))
	for i, s := range c.states {
		out[i] = s.Clone()
	}
	return out
}

// TransitionMatrix returns a copy of the analogue transition matrix.
func (c *AnalogueChain) TransitionMatrix() *matrix.Dense {
	return c.g.Clone().(*matrix.Dense)
}

// Analogues returns the k analogue indices of stored state i, closest first.
// The sentinel is included when it is among the neighbours.
func (c *AnalogueChain) Analogues(i int) ([]int, error) {
	if i < 0 || i >= len(c.states) {
		return nil, wrapf("AnalogueChain.Analogues", "i=%d: %w", i, ErrIndexOutOfRange)
	}
	return c.analogues(c.states[i], i)
}

// Step draws the next state index from stored state current by querying the
// neighbour index; the transition matrix is not consulted.
func (c *AnalogueChain) Step(r *rand.Rand, current int) (int, error) {
	if current < 0 || current >= len(c.states) {
		return 0, wrapf(opAnalogueStep, "current=%d: %w", current, ErrIndexOutOfRange)
	}
	return c.next(opAnalogueStep, orDefault(r), c.states[current], current)
}

// SimulateIndices walks steps transitions from stored state start.
func (c *AnalogueChain) SimulateIndices(r *rand.Rand, start, steps int) ([]int, error) {
	return walk(opAnalogueSim, len(c.states), r, start, steps, func(r *rand.Rand, cur int) (int, error) {
		return c.next(opAnalogueSim, r, c.states[cur], cur)
	})
}

// Simulate returns steps+1 states starting at stored state start.
func (c *AnalogueChain) Simulate(r *rand.Rand, start, steps int) ([]State, error) {
	path, err := c.SimulateIndices(r, start, steps)
	if err != nil {
		return nil, err
	}
	return pathStates(c.states, path), nil
}

// SimulateFrom returns steps+1 states starting at an arbitrary point x0,
// which need not be one of the stored states. The first transition uses the
// k nearest stored states of x0 as analogues (x0 itself is not excluded);
// later transitions proceed as in Simulate.
func (c *AnalogueChain) SimulateFrom(r *rand.Rand, x0 State, steps int) ([]State, error) {
	if steps < 0 {
		return nil, wrapf(opAnalogueFrom, "steps=%d: %w", steps, ErrNegativeSteps)
	}
	if len(x0) != c.index.Dims() {
		return nil, wrapf(opAnalogueFrom, "x0 has dim %d, want %d: %w", len(x0), c.index.Dims(), ErrDimensionMismatch)
	}
	if _, err := validateStates(opAnalogueFrom, []State{x0}, 1); err != nil {
		return nil, err
	}
	out := make([]State, 1, steps+1)
	out[0] = x0.Clone()
	if steps == 0 {
		return out, nil
	}

	r = orDefault(r)
	first, err := c.next(opAnalogueFrom, r, x0, -1)
	if err != nil {
		return nil, err
	}
	path, err := c.SimulateIndices(r, first, steps-1)
	if err != nil {
		return nil, err
	}

	return append(out, pathStates(c.states, path)...), nil
}

// Committor solves the committor problem on the analogue transition matrix.
func (c *AnalogueChain) Committor(a, b []int) (*Committor, error) {
	return solveCommittor(c.g, a, b, c.opts)
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
