// SPDX-License-Identifier: MIT

package dynamics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/stochrare/markov"
	"github.com/katalvlaran/stochrare/matrix"
)

const (
	methodRuin   = "GamblersRuin"
	minRuinSteps = 2
)

// GamblersRuin returns the ruin chain on states 0..n: from 0 < i < n the
// walk moves to i+1 with probability p and to i-1 with probability 1-p;
// 0 and n are absorbing. State i is the scalar i.
//
// With A = {0} and B = {n} the committor is i/n for p = 1/2 and
// (1-r^i)/(1-r^n), r = (1-p)/p, otherwise (see RuinCommittor).
//
// Errors: ErrTooFewStates for n < 2, ErrInvalidProbability for p ∉ [0,1].
// Complexity: O(n²) (dense matrix).
func GamblersRuin(n int, p float64, opts ...markov.Option) (*markov.ExplicitChain, error) {
	if n < minRuinSteps {
		return nil, fmt.Errorf("%s: n=%d < min=%d: %w", methodRuin, n, minRuinSteps, ErrTooFewStates)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("%s: p=%g: %w", methodRuin, p, ErrInvalidProbability)
	}

	// Absorbing rows stay identity rows; interior rows are replaced.
	g, err := matrix.NewIdentity(n + 1)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRuin, err)
	}
	xs := make([]float64, n+1)
	for i := 1; i < n; i++ {
		_ = g.Set(i, i, 0)
		_ = g.Set(i, i+1, p)
		_ = g.Set(i, i-1, 1-p)
	}
	for i := range xs {
		xs[i] = float64(i)
	}

	c, err := markov.NewExplicit(markov.Scalars(xs...), g, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRuin, err)
	}
	return c, nil
}

// RuinCommittor is the closed-form probability that the ruin walk started at
// i reaches n before 0.
func RuinCommittor(i, n int, p float64) float64 {
	switch {
	case i >= n:
		return 1
	case p == 0:
		return 0
	case p == 0.5:
		return float64(i) / float64(n)
	}
	r := (1 - p) / p
	return (1 - math.Pow(r, float64(i))) / (1 - math.Pow(r, float64(n)))
}
