// SPDX-License-Identifier: MIT

// Package markov - RNG utilities shared by every sampler in the package.
//
// Goals:
//   - Determinism: same seed ⇒ identical trajectories across platforms.
//   - Explicit threading: no package-level generator, no time-based seeds.
//   - nil policy: a nil *rand.Rand means "fresh default stream", so a call
//     made with nil is reseeded right before its first draw and reproduces.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Do not share one across goroutines;
//     use DeriveRand to create independent streams.
package markov

import "math/rand/v2"

// defaultRNGSeed is used when callers pass seed==0 or a nil generator.
const defaultRNGSeed uint64 = 100

// pcgStream is the fixed second PCG word; only the first word varies by seed.
const pcgStream uint64 = 0x9e3779b97f4a7c15

// NewRand returns a deterministic PCG-backed generator.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed is used verbatim.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewPCG(seed, pcgStream))
}

// deriveSeed mixes a parent seed and a stream id (SplitMix64 finalizer).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// DeriveRand creates an independent deterministic stream from base and a
// stream id. base is advanced once so repeated derivations with the same id
// still differ. A nil base uses defaultRNGSeed as parent.
func DeriveRand(base *rand.Rand, stream uint64) *rand.Rand {
	parent := defaultRNGSeed
	if base != nil {
		parent = base.Uint64()
	}
	return rand.New(rand.NewPCG(deriveSeed(parent, stream), pcgStream))
}

// orDefault applies the nil policy.
func orDefault(r *rand.Rand) *rand.Rand {
	if r == nil {
		return NewRand(0)
	}
	return r
}
