// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage and numeric checks behind
// transition matrices.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked accessors that
//     return sentinel errors instead of panicking.
//   - Validators: shape, finiteness, non-negativity and row-stochasticity
//     checks with a single tolerance policy (DefaultEpsilon).
//   - A gonum bridge (ToGonum / FromGonum) and EigenGeneral, a general
//     (non-symmetric) eigen decomposition used by the committor solver.
//
// A transition matrix is simply a square Dense that passed
// ValidateRowStochastic: every entry finite and non-negative, every row
// summing to 1 within the configured epsilon.
//
// Matrices are dense by design: the Markov chains built on top target
// hundreds to a few thousand states, where O(N²) memory is acceptable.
package matrix
