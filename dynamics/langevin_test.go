// SPDX-License-Identifier: MIT
package dynamics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stochrare/dynamics"
	"github.com/katalvlaran/stochrare/markov"
)

func TestIntegrate_Deterministic(t *testing.T) {
	l := dynamics.Langevin{Drift: dynamics.DoubleWell(), Sigma: 0.5, Dim: 1}

	a, err := l.Integrate(markov.NewRand(4), markov.State{-1}, 200)
	require.NoError(t, err)
	b, err := l.Integrate(markov.NewRand(4), markov.State{-1}, 200)
	require.NoError(t, err)
	require.Len(t, a, 201)
	assert.Equal(t, a, b)

	n1, err := l.Integrate(nil, markov.State{-1}, 20)
	require.NoError(t, err)
	n2, err := l.Integrate(nil, markov.State{-1}, 20)
	require.NoError(t, err)
	assert.Equal(t, n1, n2)
}

// TestIntegrate_NoNoise follows the deterministic flow: double-well
// trajectories relax to the nearest minimum.
func TestIntegrate_NoNoise(t *testing.T) {
	l := dynamics.Langevin{Drift: dynamics.DoubleWell(), Dim: 2}
	out, err := l.Integrate(nil, markov.State{0.3, -0.2}, 100, dynamics.WithTimeStep(0.05), dynamics.WithThinning(10))
	require.NoError(t, err)
	last := out[len(out)-1]
	assert.InDelta(t, 1, last[0], 1e-6)
	assert.InDelta(t, -1, last[1], 1e-6)

	// Exact Euler update for one step.
	one, err := l.Integrate(nil, markov.State{0.5, 0}, 1, dynamics.WithTimeStep(0.1))
	require.NoError(t, err)
	assert.InDelta(t, 0.5+0.1*(0.5-0.125), one[1][0], 1e-15)
	assert.Zero(t, one[1][1])
}

// TestIntegrate_OUStationaryVariance compares the empirical variance of an
// Ornstein–Uhlenbeck path with σ²/(2θ).
func TestIntegrate_OUStationaryVariance(t *testing.T) {
	const theta, sigma = 1.0, 0.8
	l := dynamics.Langevin{Drift: dynamics.OrnsteinUhlenbeck(theta, 2), Sigma: sigma, Dim: 1}
	out, err := l.Integrate(markov.NewRand(17), markov.State{2}, 20000, dynamics.WithThinning(10))
	require.NoError(t, err)

	var mean, sq float64
	for _, s := range out {
		mean += s[0]
	}
	mean /= float64(len(out))
	for _, s := range out {
		sq += (s[0] - mean) * (s[0] - mean)
	}
	variance := sq / float64(len(out)-1)
	assert.InDelta(t, 2, mean, 0.1)
	assert.InDelta(t, sigma*sigma/(2*theta), variance, 0.06)
}

func TestIntegrate_Errors(t *testing.T) {
	l := dynamics.Langevin{Drift: dynamics.DoubleWell(), Sigma: 1, Dim: 1}
	_, err := l.Integrate(nil, markov.State{0, 0}, 3)
	require.ErrorIs(t, err, dynamics.ErrDimensionMismatch)
	_, err = l.Integrate(nil, markov.State{0}, -1)
	require.ErrorIs(t, err, dynamics.ErrTooFewStates)

	unstable := dynamics.Langevin{Drift: func(dst, x []float64, _ float64) { dst[0] = x[0] * x[0] * x[0] }, Dim: 1}
	_, err = unstable.Integrate(nil, markov.State{10}, 50, dynamics.WithTimeStep(1))
	require.ErrorIs(t, err, dynamics.ErrDiverged)

	assert.Panics(t, func() { dynamics.WithTimeStep(0) })
	assert.Panics(t, func() { dynamics.WithThinning(0) })
}

// TestIntegrate_FeedsAnalogue builds an analogue chain from a double-well path
// and checks the chain invariants hold on real data.
func TestIntegrate_FeedsAnalogue(t *testing.T) {
	l := dynamics.Langevin{Drift: dynamics.DoubleWell(), Sigma: 0.7, Dim: 1}
	xs, err := l.Integrate(markov.NewRand(8), markov.State{-1}, 400, dynamics.WithThinning(5))
	require.NoError(t, err)

	c, err := markov.NewAnalogue(xs, 5)
	require.NoError(t, err)
	for i, s := range c.TransitionMatrix().RowSums() {
		assert.InDelta(t, 1, s, 1e-9, "row %d", i)
	}
}
