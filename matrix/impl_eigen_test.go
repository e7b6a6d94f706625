// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/stochrare/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestEigenGeneral_Absorbing checks that a 3-state chain with two absorbing
// states has a two-dimensional eigenvalue-1 eigenspace on both sides.
func TestEigenGeneral_Absorbing(t *testing.T) {
	g := mustRows(t, [][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0.25, 0.25, 0.5},
	})

	for _, side := range []matrix.EigenSide{matrix.EigenRight, matrix.EigenLeft} {
		res, err := matrix.EigenGeneral(g, side)
		require.NoError(t, err, side.String())
		vals, vecs := res.RealVectorsNear(1, 1e-8)
		assert.Len(t, vals, 2, side.String())
		assert.Len(t, vecs, 2, side.String())
	}
}

// TestEigenGeneral_RightVectorsSatisfyDefinition verifies A·v = λ·v.
func TestEigenGeneral_RightVectorsSatisfyDefinition(t *testing.T) {
	g := mustRows(t, [][]float64{
		{2, 1},
		{0, 3},
	})
	res, err := matrix.EigenGeneral(g, matrix.EigenRight)
	require.NoError(t, err)

	gg, err := matrix.ToGonum(g)
	require.NoError(t, err)
	for _, target := range []float64{2, 3} {
		vals, vecs := res.RealVectorsNear(target, 1e-10)
		require.Len(t, vals, 1)
		v := mat.NewVecDense(2, vecs[0])
		var av mat.VecDense
		av.MulVec(gg, v)
		for i := 0; i < 2; i++ {
			assert.InDelta(t, target*v.AtVec(i), av.AtVec(i), 1e-10)
		}
	}
}

// TestEigenGeneral_ComplexSkipped ensures rotation eigenvalues are never reported as real.
func TestEigenGeneral_ComplexSkipped(t *testing.T) {
	g := mustRows(t, [][]float64{
		{0, -1},
		{1, 0},
	})
	res, err := matrix.EigenGeneral(g, matrix.EigenRight)
	require.NoError(t, err)
	vals, _ := res.RealVectorsNear(0, 0.5)
	assert.Empty(t, vals)
}

// TestEigenGeneral_Validation rejects non-square input.
func TestEigenGeneral_Validation(t *testing.T) {
	_, err := matrix.EigenGeneral(mustRows(t, [][]float64{{1, 2}}), matrix.EigenRight)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.EigenGeneral(nil, matrix.EigenRight)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestGonumRoundTrip ensures both directions copy.
func TestGonumRoundTrip(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	g, err := matrix.ToGonum(m)
	require.NoError(t, err)
	g.Set(0, 0, 42)
	v, _ := m.At(0, 0)
	require.Equal(t, 1.0, v)

	back, err := matrix.FromGonum(g)
	require.NoError(t, err)
	v, _ = back.At(0, 0)
	require.Equal(t, 42.0, v)
	require.False(t, math.IsNaN(v))
}
