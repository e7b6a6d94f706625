// SPDX-License-Identifier: MIT

// Package stochrare estimates Markov chains from observed trajectories and
// computes committor functions on them.
//
// What is in the box:
//
//	matrix/   row-major Dense storage, row-stochastic validation, gonum eigen bridge
//	spatial/  static k-nearest-neighbour index (kd-tree)
//	markov/   ExplicitChain, AnalogueChain, committor solver, stepping primitives
//	dynamics/ reference processes: gambler's ruin, Langevin (double well, OU)
//	trajio/   trajectory CSV, committor tables, plots
//	config/   YAML run configuration for cmd/amc
//	cmd/amc/  command line driver
//
// An analogue chain replaces the unknown dynamics of an observed process by
// "go where your nearest neighbours went next":
//
//	xs, _ := trajio.ReadTrajectoryFile("x.csv", true)
//	chain, _ := markov.NewAnalogue(xs.States, 10)
//	a, b := markov.LevelSets(xs.States, markov.Coordinate(0), -0.8, 0.8)
//	q, _ := chain.Committor(a, b) // q.At(i): probability to reach b before a
//
// Randomness is explicit everywhere (math/rand/v2); a nil generator selects a
// fixed default stream, so runs reproduce.
//
//	go get github.com/katalvlaran/stochrare
package stochrare
