// SPDX-License-Identifier: MIT

// Package percolation samples bond-percolated hypercubes and Fibonacci cubes.
//
// A hypercube of dimension n has M = 2^n sites labelled by n-bit integers;
// sites u and v share a bond when they differ in exactly one bit. Each bond is
// retained independently with probability p. The Fibonacci cube (PXP model)
// keeps only labels with no two adjacent set bits (open boundary).
//
// Generators:
//
//   - ClusterSize: depth-first growth from site 0, size only.
//   - HypercubeH: the whole percolated adjacency as an M×M CSR.
//   - HypercubeSC: the cluster containing site 0, as (H, size).
//   - HypercubeLC: every cluster enumerated from ascending roots, the largest
//     kept (first found wins on ties); growth stops once no unexplored cluster
//     can be larger.
//   - PathLengths / PathLengthsLC: breadth-first distances from the cluster root.
//   - PXPSites, PXPClusterSize, PXPH: the Fibonacci-cube counterparts.
//
// Labelling convention: extracted Hamiltonians keep full M×M labels, so the root
// of a cluster is its smallest label.
//
// Determinism:
//
//   - A Sampler owns one *rand.Rand and is NOT goroutine-safe.
//   - Source.Stream(label, i) derives an independent Sampler per realization, so
//     realization i is identical whether realizations run serially or in parallel.
//
// Errors:
//
//   - ErrInvalidArgs for n outside [1, MaxN] or p outside [0, 1].
package percolation
