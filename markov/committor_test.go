// SPDX-License-Identifier: MIT
package markov_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/stochrare/markov"
)

// ruinProbability is the closed-form probability of hitting n before 0 from i.
func ruinProbability(i, n int, p float64) float64 {
	if p == 0.5 {
		return float64(i) / float64(n)
	}
	r := (1 - p) / p
	return (1 - math.Pow(r, float64(i))) / (1 - math.Pow(r, float64(n)))
}

func TestCommittor_GamblersRuin(t *testing.T) {
	tests := []struct {
		n int
		p float64
	}{
		{10, 0.5},
		{10, 0.3},
		{10, 0.7},
		{5, 0.45},
		{20, 0.55},
	}
	for _, tc := range tests {
		c := gamblersRuin(t, tc.n, tc.p)
		q, err := c.Committor([]int{0}, []int{tc.n})
		require.NoError(t, err, "n=%d p=%g", tc.n, tc.p)

		require.Len(t, q.Values, tc.n+1)
		assert.Equal(t, markov.PosA, q.Position[0])
		assert.Equal(t, markov.PosB, q.Position[tc.n])
		for i := 0; i <= tc.n; i++ {
			assert.InDelta(t, ruinProbability(i, tc.n, tc.p), q.At(i), 1e-8, "n=%d p=%g i=%d", tc.n, tc.p, i)
		}
		for i := 1; i < tc.n; i++ {
			assert.Equal(t, i+1, q.Position[i], "interior states follow A and B")
		}
	}
}

func TestCommittor_BoundaryValuesAndRange(t *testing.T) {
	c := gamblersRuin(t, 8, 0.6)
	q, err := c.Committor([]int{0}, []int{8})
	require.NoError(t, err)

	assert.Equal(t, 0.0, q.Values[markov.PosA])
	assert.Equal(t, 1.0, q.Values[markov.PosB])
	full := q.Full()
	for i, v := range full {
		assert.GreaterOrEqual(t, v, 0.0, "state %d", i)
		assert.LessOrEqual(t, v, 1.0, "state %d", i)
		if i > 0 {
			assert.Greater(t, v, full[i-1], "monotone in the starting capital")
		}
	}
}

// TestCommittor_Value checks the bounds-checked accessor against At.
func TestCommittor_Value(t *testing.T) {
	c := gamblersRuin(t, 4, 0.5)
	q, err := c.Committor([]int{0}, []int{4})
	require.NoError(t, err)

	for i := 0; i <= 4; i++ {
		v, err := q.Value(i)
		require.NoError(t, err)
		assert.Equal(t, q.At(i), v)
	}
	for _, i := range []int{-1, 5} {
		_, err = q.Value(i)
		require.ErrorIs(t, err, markov.ErrIndexOutOfRange, "i=%d", i)
	}
	assert.Panics(t, func() { q.At(5) })
}

func TestCommittor_Idempotent(t *testing.T) {
	c := gamblersRuin(t, 12, 0.4)
	q1, err := c.Committor([]int{0}, []int{12})
	require.NoError(t, err)
	q2, err := c.Committor([]int{0}, []int{12})
	require.NoError(t, err)
	assert.Equal(t, q1, q2)

	q3, err := markov.SolveCommittor(c.TransitionMatrix(), []int{0}, []int{12})
	require.NoError(t, err)
	assert.Equal(t, q1, q3)
}

// TestCommittor_SetsOfSeveralStates collapses {0,1} into A: from i the walk
// is a fair ruin game on 1..5, so q(i) = (i-1)/4.
func TestCommittor_SetsOfSeveralStates(t *testing.T) {
	c := gamblersRuin(t, 5, 0.5)
	q, err := c.Committor([]int{0, 1}, []int{5})
	require.NoError(t, err)

	require.Len(t, q.Values, 5)
	assert.Equal(t, markov.PosA, q.Position[1])
	for i := 1; i <= 5; i++ {
		assert.InDelta(t, float64(i-1)/4, q.At(i), 1e-9, "i=%d", i)
	}
	assert.Zero(t, q.At(0))
}

// TestCommittor_MatchesLinearSolve compares with the direct solution of
// (I - Q) q = r_B on a random dense chain.
func TestCommittor_MatchesLinearSolve(t *testing.T) {
	const n = 8
	r := markov.NewRand(13)
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		s := 0.0
		for j := range rows[i] {
			rows[i][j] = 0.05 + r.Float64()
			s += rows[i][j]
		}
		for j := range rows[i] {
			rows[i][j] /= s
		}
	}
	g := mustDense(t, rows)
	q, err := markov.SolveCommittor(g, []int{0}, []int{n - 1})
	require.NoError(t, err)

	// Interior states 1..n-2.
	m := n - 2
	lhs := mat.NewDense(m, m, nil)
	rhs := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			v := -rows[i+1][j+1]
			if i == j {
				v++
			}
			lhs.Set(i, j, v)
		}
		rhs.SetVec(i, rows[i+1][n-1])
	}
	var want mat.VecDense
	require.NoError(t, want.SolveVec(lhs, rhs))
	for i := 0; i < m; i++ {
		assert.InDelta(t, want.AtVec(i), q.At(i+1), 1e-9, "state %d", i+1)
	}
}

func TestCommittor_PartitionErrors(t *testing.T) {
	c := gamblersRuin(t, 4, 0.5)
	tests := []struct {
		name string
		a, b []int
		want error
	}{
		{"empty A", nil, []int{4}, markov.ErrPartitionOverlap},
		{"empty B", []int{0}, []int{}, markov.ErrPartitionOverlap},
		{"overlap", []int{0, 2}, []int{2, 4}, markov.ErrPartitionOverlap},
		{"cover all", []int{0, 1, 2}, []int{3, 4}, markov.ErrPartitionOverlap},
		{"negative", []int{-1}, []int{4}, markov.ErrIndexOutOfRange},
		{"too large", []int{0}, []int{5}, markov.ErrIndexOutOfRange},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.Committor(tc.a, tc.b)
			require.ErrorIs(t, err, tc.want)
		})
	}

	// Repeating an index inside one set is harmless.
	q, err := c.Committor([]int{0, 0}, []int{4})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, q.At(2), 1e-9)
}

// TestCommittor_ClosedInteriorClass: states 2 and 3 swap forever and never
// reach A or B, so the unit eigenspace is three-dimensional.
func TestCommittor_ClosedInteriorClass(t *testing.T) {
	g := mustDense(t, [][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})
	_, err := markov.SolveCommittor(g, []int{0}, []int{1})
	require.ErrorIs(t, err, markov.ErrIllConditionedAbsorption)
	assert.Contains(t, err.Error(), "cannot reach A or B")
}

func TestCommittor_SingularTolerance(t *testing.T) {
	c := gamblersRuin(t, 4, 0.5)
	// Unit eigenvectors give |det| <= 1, so a floor of 2 always trips.
	_, err := markov.SolveCommittor(c.TransitionMatrix(), []int{0}, []int{4}, markov.WithSingularTolerance(2))
	require.ErrorIs(t, err, markov.ErrIllConditionedAbsorption)
}

func TestSolveCommittor_InvalidMatrix(t *testing.T) {
	g := mustDense(t, [][]float64{{0.5, 0.2}, {0, 1}})
	_, err := markov.SolveCommittor(g, []int{0}, []int{1})
	require.ErrorIs(t, err, markov.ErrInvalidStochasticRow)
}

// TestCommittor_AnalogueChain: on the diagonal chain probability flows to the
// right and column 0 is empty, so with A={0}, B={8} every other state commits
// to B with certainty.
func TestCommittor_AnalogueChain(t *testing.T) {
	c, err := markov.NewAnalogue(diagonal(10), 2)
	require.NoError(t, err)

	q, err := c.Committor([]int{0}, []int{8})
	require.NoError(t, err)
	for i := 1; i < 10; i++ {
		assert.InDelta(t, 1.0, q.At(i), 1e-8, "state %d", i)
	}
	assert.Zero(t, q.At(0))

	// Choosing B={9} leaves the even states 2, 4, 6, 8 in a closed class.
	_, err = c.Committor([]int{0}, []int{9})
	require.ErrorIs(t, err, markov.ErrIllConditionedAbsorption)
	assert.Contains(t, err.Error(), "4 states cannot reach A or B (first: 2)")
}
