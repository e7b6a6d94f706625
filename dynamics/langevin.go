// SPDX-License-Identifier: MIT

package dynamics

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/stochrare/markov"
)

const methodIntegrate = "Langevin.Integrate"

// Defaults for Langevin integration.
const (
	DefaultTimeStep = 1e-2 // Euler–Maruyama step Δt
	DefaultThinning = 1    // keep every sample
)

// Drift evaluates b(x, t) into dst; len(dst) == len(x).
type Drift func(dst, x []float64, t float64)

// DoubleWell is the gradient drift b(x) = x - x³ of V(x) = x⁴/4 - x²/2,
// applied per coordinate. Its wells sit at ±1 with a barrier at 0.
func DoubleWell() Drift {
	return func(dst, x []float64, _ float64) {
		for i, v := range x {
			dst[i] = v - v*v*v
		}
	}
}

// OrnsteinUhlenbeck is the linear drift b(x) = -θ(x - μ) per coordinate.
func OrnsteinUhlenbeck(theta, mu float64) Drift {
	return func(dst, x []float64, _ float64) {
		for i, v := range x {
			dst[i] = -theta * (v - mu)
		}
	}
}

// Langevin is the diffusion dx = b(x,t)dt + σ dW with isotropic noise.
type Langevin struct {
	Drift Drift
	Sigma float64 // noise amplitude σ ≥ 0
	Dim   int     // state dimension
}

// IntegrateOption configures Integrate.
type IntegrateOption func(*integrateConfig)

type integrateConfig struct {
	dt   float64
	thin int
	t0   float64
}

// WithTimeStep sets Δt. Panics unless dt is finite and positive.
func WithTimeStep(dt float64) IntegrateOption {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		panic("dynamics: WithTimeStep: dt must be finite, positive")
	}
	return func(c *integrateConfig) { c.dt = dt }
}

// WithThinning records every k-th integration step. Panics for k < 1.
func WithThinning(k int) IntegrateOption {
	if k < 1 {
		panic("dynamics: WithThinning: k must be >= 1")
	}
	return func(c *integrateConfig) { c.thin = k }
}

// WithStartTime sets t0 for time-dependent drifts.
func WithStartTime(t0 float64) IntegrateOption {
	return func(c *integrateConfig) { c.t0 = t0 }
}

// Integrate returns samples+1 states: x0 followed by samples recorded states.
// Each recorded state is thin Euler–Maruyama steps after the previous one:
//
//	x ← x + b(x,t)Δt + σ√Δt·Z,  Z ~ N(0, I).
//
// Errors: ErrTooFewStates for samples < 0, ErrDimensionMismatch when
// len(x0) != Dim or Dim < 1, ErrDiverged if a coordinate becomes non-finite.
//
// Complexity: O(samples·thin·Dim).
func (l Langevin) Integrate(r *rand.Rand, x0 markov.State, samples int, opts ...IntegrateOption) ([]markov.State, error) {
	cfg := integrateConfig{dt: DefaultTimeStep, thin: DefaultThinning}
	for _, set := range opts {
		set(&cfg)
	}
	if samples < 0 {
		return nil, fmt.Errorf("%s: samples=%d: %w", methodIntegrate, samples, ErrTooFewStates)
	}
	if l.Dim < 1 || len(x0) != l.Dim {
		return nil, fmt.Errorf("%s: x0 has dim %d, process dim %d: %w", methodIntegrate, len(x0), l.Dim, ErrDimensionMismatch)
	}
	if l.Drift == nil {
		l.Drift = func(dst, _ []float64, _ float64) { clear(dst) }
	}
	if r == nil {
		r = markov.NewRand(0)
	}
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: r}

	out := make([]markov.State, 1, samples+1)
	out[0] = x0.Clone()

	var (
		x     = x0.Clone()
		b     = make([]float64, l.Dim)
		scale = l.Sigma * math.Sqrt(cfg.dt)
		t     = cfg.t0
		s, k  int
		i     int
	)
	for s = 0; s < samples; s++ {
		for k = 0; k < cfg.thin; k++ {
			l.Drift(b, x, t)
			for i = range x {
				x[i] += b[i]*cfg.dt + scale*noise.Rand()
			}
			t += cfg.dt
		}
		for i = range x {
			if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
				return nil, fmt.Errorf("%s: sample %d, t=%g: %w", methodIntegrate, s+1, t, ErrDiverged)
			}
		}
		out = append(out, x.Clone())
	}

	return out, nil
}
