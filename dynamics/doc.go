// SPDX-License-Identifier: MIT

// Package dynamics provides reference processes for the markov package:
//
//   - GamblersRuin: the birth–death chain on 0..n with absorbing ends, whose
//     committor has a closed form and serves as a solver benchmark.
//   - Langevin: Euler–Maruyama integration of dx = b(x,t)dt + σ dW with
//     ready-made drifts (double well, Ornstein–Uhlenbeck). Its trajectories
//     feed markov.NewAnalogue the way an observed time series would.
//
// Determinism: every stochastic routine takes a *rand.Rand; nil falls back to
// markov.NewRand(0), so equal inputs give equal trajectories.
package dynamics
