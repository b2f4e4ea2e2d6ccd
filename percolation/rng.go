// SPDX-License-Identifier: MIT

// Package percolation - RNG utilities shared by every generator.
//
// Goals:
//   - Determinism: same seed ⇒ identical realizations across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a Sampler across goroutines.
//   - Use Source.Stream to create independent streams for parallel realizations.
package percolation

import (
	"hash/fnv"
	"math/rand"
)

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// deriveSeed mixes a parent seed and a stream identifier into a new 64-bit seed
// with the SplitMix64 finalizer.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Source derives per-realization Samplers from one base seed.
// A Source is immutable and safe for concurrent use.
type Source struct {
	seed int64
}

// NewSource returns a Source. Policy: seed==0 ⇒ defaultRNGSeed.
func NewSource(seed int64) Source {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return Source{seed: seed}
}

// Seed returns the effective base seed.
func (s Source) Seed() int64 { return s.seed }

// Stream returns the Sampler for realization i of the dataset named label.
// Distinct (label, i) pairs give decorrelated streams; equal pairs give equal
// streams.
func (s Source) Stream(label string, i int) *Sampler {
	h := fnv.New64a()
	_, _ = h.Write([]byte(label))
	parent := deriveSeed(s.seed, h.Sum64())

	return &Sampler{rng: rand.New(rand.NewSource(deriveSeed(parent, uint64(i))))}
}

// Sampler draws bond-percolation realizations from a single RNG stream.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a Sampler seeded with seed (0 ⇒ defaultRNGSeed).
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rngFromSeed(seed)}
}

// bond reports whether a bond survives; every call consumes one draw.
func (s *Sampler) bond(p float64) bool {
	return s.rng.Float64() < p
}
