// SPDX-License-Identifier: MIT

package markov

import (
	"math"
	"math/rand/v2"
)

// Process is the contract an external rare-event sampler (multilevel
// splitting and friends) drives one step at a time: a seeded stepping
// function and a score mapping a trajectory to its level.
type Process interface {
	// Step returns the state index following current at time t.
	Step(r *rand.Rand, current, t int) (int, error)
	// Score maps an index path to a scalar level.
	Score(path []int) float64
}

// ScoreFunc maps an index path to a scalar level.
type ScoreFunc func(path []int) float64

// StepProcess adapts any Stepper (ExplicitChain, AnalogueChain) to Process.
// Chains are time-homogeneous, so t is accepted and ignored.
//
// Step called with a nil generator draws from a stream owned by the process
// (seeded like NewRand(0) once, at NewProcess), so successive nil-rng steps
// advance one sequence instead of repeating the first draw. That stream makes
// a StepProcess unsafe for concurrent nil-rng use; pass per-goroutine
// generators (DeriveRand) instead.
type StepProcess struct {
	chain Stepper
	score ScoreFunc
	own   *rand.Rand
}

var _ Process = (*StepProcess)(nil)

// NewProcess wraps chain with the given score. A nil score scores every path 0.
func NewProcess(chain Stepper, score ScoreFunc) *StepProcess {
	if score == nil {
		score = func([]int) float64 { return 0 }
	}
	return &StepProcess{chain: chain, score: score, own: NewRand(0)}
}

// Step implements Process.
func (p *StepProcess) Step(r *rand.Rand, current, _ int) (int, error) {
	if r == nil {
		r = p.own
	}
	return p.chain.Step(r, current)
}

// Score implements Process.
func (p *StepProcess) Score(path []int) float64 { return p.score(path) }

// Extend appends steps transitions to path (which must be non-empty) and
// returns the extended path. The input slice is not modified. A nil r is a
// fresh default stream per call, as for Chain.Simulate.
func (p *StepProcess) Extend(r *rand.Rand, path []int, steps int) ([]int, error) {
	if len(path) == 0 {
		return nil, wrapf("StepProcess.Extend", "empty path: %w", ErrEmptyTrajectory)
	}
	if steps < 0 {
		return nil, wrapf("StepProcess.Extend", "steps=%d: %w", steps, ErrNegativeSteps)
	}
	r = orDefault(r)
	out := make([]int, len(path), len(path)+steps)
	copy(out, path)
	cur := out[len(out)-1]
	for t := 0; t < steps; t++ {
		next, err := p.chain.Step(r, cur)
		if err != nil {
			return nil, err
		}
		out = append(out, next)
		cur = next
	}
	return out, nil
}

// ScoreByState builds the usual splitting level function: the maximum of an
// observable f over the states visited by the path. An empty path scores -Inf.
func ScoreByState(states []State, f func(State) float64) ScoreFunc {
	return func(path []int) float64 {
		best := math.Inf(-1)
		for _, k := range path {
			if v := f(states[k]); v > best {
				best = v
			}
		}
		return best
	}
}
