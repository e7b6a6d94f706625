// SPDX-License-Identifier: MIT

package markov

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/stochrare/matrix"
)

const opCommittor = "SolveCommittor"

// Reduced positions of the two absorbing aggregates.
const (
	PosA = 0 // aggregate of set A, committor 0
	PosB = 1 // aggregate of set B, committor 1
)

// membership of an original state in the committor partition.
const (
	inNone = iota
	inA
	inB
)

// Committor is the solution of a committor problem.
//
// Values is indexed by reduced position: Values[PosA] = 0, Values[PosB] = 1,
// and interior states (neither in A nor in B) occupy positions 2, 3, ... in
// increasing order of their original index. Position maps every original
// index to its reduced position, so states of A map to PosA and states of B
// to PosB.
type Committor struct {
	Values   []float64
	Position []int
}

// At returns the committor value of original state i.
// It panics if i is outside 0..N-1; use Value for a checked lookup.
func (c *Committor) At(i int) float64 { return c.Values[c.Position[i]] }

// Value is the checked form of At.
func (c *Committor) Value(i int) (float64, error) {
	if i < 0 || i >= len(c.Position) {
		return 0, wrapf("Committor.Value", "i=%d, have %d states: %w", i, len(c.Position), ErrIndexOutOfRange)
	}
	return c.Values[c.Position[i]], nil
}

// Full returns the committor value of every original state, in index order.
func (c *Committor) Full() []float64 {
	out := make([]float64, len(c.Position))
	for i, p := range c.Position {
		out[i] = c.Values[p]
	}
	return out
}

// SolveCommittor computes, for the chain with transition matrix g, the
// probability of reaching b before a from every state.
//
// Implementation:
//   - Stage 1: validate g (row-stochastic) and the partition.
//   - Stage 2: build the reduced matrix Gt: A and B collapsed into two
//     absorbing states, interior states renumbered from 2.
//   - Stage 3: eigen-decompose Gt and keep the eigenvectors v with Gt·v = v.
//     The committor is harmonic on interior states, so it lies in this
//     two-dimensional eigenspace.
//   - Stage 4: solve the 2×2 boundary system (0 on A, 1 on B) for the
//     combination coefficients and evaluate the combination.
//
// Errors:
//   - ErrInvalidStochasticRow for a malformed g.
//   - ErrIndexOutOfRange, ErrPartitionOverlap for a malformed partition.
//   - ErrIllConditionedAbsorption when the eigenvalue-1 eigenspace is not
//     two-dimensional or the boundary system is (nearly) singular.
//
// The result depends only on the inputs; repeated calls return equal values.
//
// Complexity: O(N²) reduction, O(M³) eigen decomposition with M = N-|A|-|B|+2.
func SolveCommittor(g matrix.Matrix, a, b []int, opts ...Option) (*Committor, error) {
	o := gatherOptions(opts...)
	if err := matrix.ValidateRowStochastic(g, matrix.WithEpsilon(o.eps)); err != nil {
		return nil, wrapf(opCommittor, "%w: %w", err, ErrInvalidStochasticRow)
	}
	return solveCommittor(g, a, b, o)
}

// solveCommittor assumes g was validated (chains validate at construction).
func solveCommittor(g matrix.Matrix, a, b []int, o options) (*Committor, error) {
	n := g.Rows()
	member, err := partition(n, a, b)
	if err != nil {
		return nil, err
	}

	// Stage 2: reduced positions and the reduced matrix.
	pos := make([]int, n)
	m := 2
	for i, s := range member {
		switch s {
		case inA:
			pos[i] = PosA
		case inB:
			pos[i] = PosB
		default:
			pos[i] = m
			m++
		}
	}
	gt, err := matrix.NewDense(m, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCommittor, err)
	}
	_ = gt.Set(PosA, PosA, 1)
	_ = gt.Set(PosB, PosB, 1)

	var (
		i, j int
		v, w float64
	)
	for i = 0; i < n; i++ {
		if member[i] != inNone {
			continue
		}
		for j = 0; j < n; j++ {
			v, _ = g.At(i, j)
			if v == 0 {
				continue
			}
			// A and B columns accumulate; interior columns receive one entry each.
			w, _ = gt.At(pos[i], pos[j])
			_ = gt.Set(pos[i], pos[j], w+v)
		}
	}

	// Stage 3: eigenvalue-1 eigenvectors acting on functions of state.
	eig, err := matrix.EigenGeneral(gt, matrix.EigenRight)
	if err != nil {
		return nil, wrapf(opCommittor, "%w: %w", err, ErrIllConditionedAbsorption)
	}
	_, vecs := eig.RealVectorsNear(1, o.eigenTol)
	o.debug("committor reduced chain",
		"states", n, "reduced", m, "unit_eigenvalues", len(vecs))
	if len(vecs) != 2 {
		msg := fmt.Sprintf("%d eigenvalue-1 eigenvectors, want 2", len(vecs))
		if stuck, rerr := UnreachableStates(g, a, b); rerr == nil && len(stuck) > 0 {
			msg += fmt.Sprintf("; %d states cannot reach A or B (first: %d)", len(stuck), stuck[0])
		}
		return nil, wrapf(opCommittor, "%s: %w", msg, ErrIllConditionedAbsorption)
	}

	// Stage 4: boundary system [v1(A) v2(A); v1(B) v2(B)]·c = [0; 1].
	v1, v2 := vecs[0], vecs[1]
	bnd := mat.NewDense(2, 2, []float64{
		v1[PosA], v2[PosA],
		v1[PosB], v2[PosB],
	})
	if det := mat.Det(bnd); math.Abs(det) < o.singularTol {
		return nil, wrapf(opCommittor, "boundary determinant %g: %w", det, ErrIllConditionedAbsorption)
	}
	var coef mat.VecDense
	if err = coef.SolveVec(bnd, mat.NewVecDense(2, []float64{0, 1})); err != nil {
		return nil, wrapf(opCommittor, "boundary solve: %v: %w", err, ErrIllConditionedAbsorption)
	}
	c1, c2 := coef.AtVec(0), coef.AtVec(1)

	vals := make([]float64, m)
	for p := range vals {
		vals[p] = clamp01(c1*v1[p] + c2*v2[p])
	}
	vals[PosA], vals[PosB] = 0, 1

	return &Committor{Values: vals, Position: pos}, nil
}

// partition validates a and b and returns per-state membership.
func partition(n int, a, b []int) ([]int, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, wrapf(opCommittor, "|A|=%d |B|=%d, both must be non-empty: %w", len(a), len(b), ErrPartitionOverlap)
	}
	member := make([]int, n)
	mark := func(set []int, tag int, name string) error {
		for _, i := range set {
			if i < 0 || i >= n {
				return wrapf(opCommittor, "%s contains %d, have %d states: %w", name, i, n, ErrIndexOutOfRange)
			}
			if member[i] != inNone && member[i] != tag {
				return wrapf(opCommittor, "state %d is in both A and B: %w", i, ErrPartitionOverlap)
			}
			member[i] = tag
		}
		return nil
	}
	if err := mark(a, inA, "A"); err != nil {
		return nil, err
	}
	if err := mark(b, inB, "B"); err != nil {
		return nil, err
	}
	interior := 0
	for _, s := range member {
		if s == inNone {
			interior++
		}
	}
	if interior == 0 {
		return nil, wrapf(opCommittor, "A and B cover all %d states: %w", n, ErrPartitionOverlap)
	}

	return member, nil
}

// clamp01 removes rounding noise outside [0,1].
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
