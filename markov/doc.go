// SPDX-License-Identifier: MIT

// Package markov builds discrete Markov chains and solves committor problems
// on them.
//
// Two chain variants implement the Chain capability interface:
//
//   - ExplicitChain: a list of states plus a validated row-stochastic
//     transition matrix. Simulation samples each next index from the current
//     row (categorical draw).
//   - AnalogueChain: an "analogue" chain estimated from one observed
//     trajectory. The successor of every stored state is approximated by the
//     recorded successors of its K nearest neighbours ("analogues").
//     Simulation queries the neighbour index directly instead of sampling
//     matrix rows, so entries that should be exactly zero can never be drawn.
//
// Committor functions (probability of hitting B before A) are computed by
// SolveCommittor from the eigenvalue-1 eigenspace of a reduced chain in which
// A and B are collapsed to two absorbing states.
//
// Randomness is always injected: every random operation takes a *rand.Rand
// (math/rand/v2). Passing nil selects a fresh deterministic stream, so such
// calls reproduce exactly; use NewRand / DeriveRand for seeded streams.
//
// Complexity:
//   - NewAnalogue: O(N·(log N + K)) neighbour queries + O(N²) dense matrix.
//   - SolveCommittor: O(N²) reduction + O(M³) eigen decomposition, M = N-|A|-|B|+2.
package markov
