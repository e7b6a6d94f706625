// SPDX-License-Identifier: MIT

// Package matrix - general (non-symmetric) eigen decomposition.
//
// Transition matrices are not symmetric, so the Jacobi sweep used for
// symmetric spectra does not apply. EigenGeneral delegates to gonum's
// mat.Eigen (LAPACK dgeev semantics) and exposes helpers to pick the real
// eigenvectors whose eigenvalue sits near a target value.

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// EigenSide selects which eigenvectors EigenGeneral computes.
type EigenSide int

const (
	// EigenRight computes v with A·v = λ·v (column action, functions of state).
	EigenRight EigenSide = iota
	// EigenLeft computes u with uᴴ·A = λ·uᴴ (row action, distributions).
	EigenLeft
)

// String implements fmt.Stringer.
func (s EigenSide) String() string {
	if s == EigenLeft {
		return "left"
	}
	return "right"
}

// EigenResult holds the spectrum of a square matrix and its eigenvectors.
// Vectors column k belongs to Values[k].
type EigenResult struct {
	Side    EigenSide
	Values  []complex128
	Vectors *mat.CDense
}

// EigenGeneral computes all eigenvalues and the requested eigenvectors of a
// real square matrix.
//
// Implementation:
//   - Stage 1: ValidateSquare + ValidateFinite.
//   - Stage 2: copy into gonum and factorize.
//   - Stage 3: extract values and vectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf from validation.
//   - ErrEigenFailed when the factorization does not converge.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func EigenGeneral(m Matrix, side EigenSide) (*EigenResult, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("EigenGeneral: %w", err)
	}
	if err := ValidateFinite(m); err != nil {
		return nil, fmt.Errorf("EigenGeneral: %w", err)
	}
	g, err := ToGonum(m)
	if err != nil {
		return nil, fmt.Errorf("EigenGeneral: %w", err)
	}

	kind := mat.EigenRight
	if side == EigenLeft {
		kind = mat.EigenLeft
	}
	var eig mat.Eigen
	if ok := eig.Factorize(g, kind); !ok {
		return nil, fmt.Errorf("EigenGeneral: %s side: %w", side, ErrEigenFailed)
	}

	res := &EigenResult{Side: side, Values: eig.Values(nil), Vectors: &mat.CDense{}}
	if side == EigenLeft {
		eig.LeftVectorsTo(res.Vectors)
	} else {
		eig.VectorsTo(res.Vectors)
	}

	return res, nil
}

// RealVectorsNear returns the eigenvalues within tol of target (real part)
// whose imaginary part is below tol, together with the real parts of their
// eigenvectors. Order follows the decomposition order.
//
// Complexity: O(n·k) for k selected vectors.
func (e *EigenResult) RealVectorsNear(target, tol float64) ([]float64, [][]float64) {
	var (
		vals []float64
		vecs [][]float64
	)
	n, _ := e.Vectors.Dims()
	for k, lambda := range e.Values {
		if math.Abs(imag(lambda)) > tol || cmplx.Abs(lambda-complex(target, 0)) > tol {
			continue
		}
		v := make([]float64, n)
		for i := 0; i < n; i++ {
			v[i] = real(e.Vectors.At(i, k))
		}
		vals = append(vals, real(lambda))
		vecs = append(vecs, v)
	}

	return vals, vecs
}
