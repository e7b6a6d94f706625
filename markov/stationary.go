// SPDX-License-Identifier: MIT

package markov

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/stochrare/matrix"
)

const opStationary = "Stationary"

// Stationary returns the stationary distribution π of the chain with
// transition matrix g: π·g = π, π ≥ 0, Σπ = 1.
//
// Implementation:
//   - Stage 1: validate g (row-stochastic).
//   - Stage 2: left eigen-decomposition; keep eigenvalue-1 vectors (WithEigenTolerance).
//   - Stage 3: require exactly one, normalise it to sum 1 and clip rounding
//     negatives to 0.
//
// Errors:
//   - ErrInvalidStochasticRow for a malformed g.
//   - ErrNoUniqueStationary when g has several closed classes (for instance
//     more than one absorbing state) and π is not unique.
//
// Complexity: O(N³).
func Stationary(g matrix.Matrix, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateRowStochastic(g, matrix.WithEpsilon(o.eps)); err != nil {
		return nil, wrapf(opStationary, "%w: %w", err, ErrInvalidStochasticRow)
	}
	return stationary(g, o)
}

func stationary(g matrix.Matrix, o options) ([]float64, error) {
	eig, err := matrix.EigenGeneral(g, matrix.EigenLeft)
	if err != nil {
		return nil, wrapf(opStationary, "%w: %w", err, ErrNoUniqueStationary)
	}
	_, vecs := eig.RealVectorsNear(1, o.eigenTol)
	o.debug("stationary distribution", "states", g.Rows(), "unit_eigenvalues", len(vecs))
	if len(vecs) != 1 {
		return nil, wrapf(opStationary, "%d eigenvalue-1 left eigenvectors, want 1: %w", len(vecs), ErrNoUniqueStationary)
	}

	pi := vecs[0]
	s := floats.Sum(pi)
	if math.Abs(s) < o.singularTol {
		return nil, wrapf(opStationary, "eigenvector sums to %g: %w", s, ErrNoUniqueStationary)
	}
	floats.Scale(1/s, pi)
	for i, v := range pi {
		if v < 0 {
			pi[i] = 0
		}
	}
	floats.Scale(1/floats.Sum(pi), pi)

	return pi, nil
}

// Stationary returns the stationary distribution of the chain.
func (c *ExplicitChain) Stationary() ([]float64, error) {
	return stationary(c.g, c.opts)
}
