// SPDX-License-Identifier: MIT

// Package markov: functional configuration. This file defines:
//   - Option (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors that panic on nonsensical values (programmer error),
//   - gatherOptions helper (internal).
//
// Options are resolved once at construction and stored on the chain, so two
// chains never share configuration and no package-level toggle exists.
package markov

import (
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxStates bounds N for chain construction. Transition matrices
	// are dense, so N=8192 already means 512 MiB of float64.
	DefaultMaxStates = 8192

	// DefaultEpsilon is the row-sum tolerance for transition matrices.
	DefaultEpsilon = 1e-9

	// DefaultEigenTolerance is the distance to 1 below which an eigenvalue of
	// the reduced committor chain counts as 1.
	DefaultEigenTolerance = 1e-8

	// DefaultSingularTolerance is the |det| floor of the 2×2 boundary system
	// built from the two (unit-norm) eigenvalue-1 eigenvectors.
	DefaultSingularTolerance = 1e-12
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicMaxStatesInvalid   = "markov: WithMaxStates: n must be >= 1"
	panicEpsilonInvalid     = "markov: WithEpsilon: eps must be finite, non-negative"
	panicEigenTolInvalid    = "markov: WithEigenTolerance: tol must be finite, positive"
	panicSingularTolInvalid = "markov: WithSingularTolerance: tol must be finite, positive"
)

// Option configures chain construction and committor solving.
type Option func(*options)

type options struct {
	maxStates   int
	eps         float64
	eigenTol    float64
	singularTol float64
	logger      *slog.Logger // nil: silent
}

// WithMaxStates overrides DefaultMaxStates.
func WithMaxStates(n int) Option {
	if n < 1 {
		panic(panicMaxStatesInvalid)
	}
	return func(o *options) { o.maxStates = n }
}

// WithEpsilon overrides the row-sum tolerance.
func WithEpsilon(eps float64) Option {
	if !finite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *options) { o.eps = eps }
}

// WithEigenTolerance overrides DefaultEigenTolerance.
func WithEigenTolerance(tol float64) Option {
	if !finite(tol) || tol <= 0 {
		panic(panicEigenTolInvalid)
	}
	return func(o *options) { o.eigenTol = tol }
}

// WithSingularTolerance overrides DefaultSingularTolerance.
func WithSingularTolerance(tol float64) Option {
	if !finite(tol) || tol <= 0 {
		panic(panicSingularTolInvalid)
	}
	return func(o *options) { o.singularTol = tol }
}

// WithLogger routes debug records (construction sizes, eigenvalue counts) to
// l. A nil logger keeps the package silent, which is the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(user ...Option) options {
	o := options{
		maxStates:   DefaultMaxStates,
		eps:         DefaultEpsilon,
		eigenTol:    DefaultEigenTolerance,
		singularTol: DefaultSingularTolerance,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}

// debug logs at debug level when a logger is configured.
func (o *options) debug(msg string, args ...any) {
	if o.logger == nil {
		return
	}
	o.logger.Debug(msg, append([]any{slog.String("component", "markov")}, args...)...)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
