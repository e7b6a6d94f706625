// SPDX-License-Identifier: MIT
package dynamics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochrare/dynamics"
)

func TestGamblersRuin_Matrix(t *testing.T) {
	c, err := dynamics.GamblersRuin(4, 0.3)
	require.NoError(t, err)
	require.Equal(t, 5, c.Len())

	g := c.TransitionMatrix()
	at := func(i, j int) float64 { v, _ := g.At(i, j); return v }
	assert.Equal(t, 1.0, at(0, 0))
	assert.Equal(t, 1.0, at(4, 4))
	assert.Equal(t, 0.3, at(2, 3))
	assert.InDelta(t, 0.7, at(2, 1), 1e-15)
	assert.Zero(t, at(2, 2))
}

func TestGamblersRuin_CommittorMatchesClosedForm(t *testing.T) {
	for _, p := range []float64{0.2, 0.5, 0.65, 1} {
		const n = 12
		c, err := dynamics.GamblersRuin(n, p)
		require.NoError(t, err)
		q, err := c.Committor([]int{0}, []int{n})
		require.NoError(t, err, "p=%g", p)
		for i := 0; i <= n; i++ {
			assert.InDelta(t, dynamics.RuinCommittor(i, n, p), q.At(i), 1e-8, "p=%g i=%d", p, i)
		}
	}
}

func TestRuinCommittor(t *testing.T) {
	assert.Equal(t, 0.3, dynamics.RuinCommittor(3, 10, 0.5))
	assert.Equal(t, 1.0, dynamics.RuinCommittor(10, 10, 0.1))
	assert.Zero(t, dynamics.RuinCommittor(4, 10, 0))
	assert.Zero(t, dynamics.RuinCommittor(0, 10, 0.7))
	for i := 0; i <= 10; i++ {
		v := dynamics.RuinCommittor(i, 10, 0.7)
		assert.False(t, math.IsNaN(v))
		assert.InDelta(t, 1-dynamics.RuinCommittor(10-i, 10, 0.3), v, 1e-12, "symmetry at %d", i)
	}
}

func TestGamblersRuin_Errors(t *testing.T) {
	_, err := dynamics.GamblersRuin(1, 0.5)
	require.ErrorIs(t, err, dynamics.ErrTooFewStates)
	_, err = dynamics.GamblersRuin(5, 1.5)
	require.ErrorIs(t, err, dynamics.ErrInvalidProbability)
	_, err = dynamics.GamblersRuin(5, math.NaN())
	require.ErrorIs(t, err, dynamics.ErrInvalidProbability)
}
