// SPDX-License-Identifier: MIT

// Package datasets names the cached percolation datasets and generates them on
// a miss.
//
// Every family goes through one code path: build the canonical cache.Key from
// (family, N, NR, p), then cache.Fetch with a generator that draws NR
// realizations. Realization i of a family always uses the RNG stream
// Source.Stream(family, i), so a dataset is identical whether it was produced
// serially or by a pool of workers.
//
// Families:
//
//	clusters_hypercube   []int        origin cluster sizes on the hypercube
//	clusters_PXP         []int        origin cluster sizes on the Fibonacci cube
//	H_SC_hypercube       []*Hamiltonian  origin cluster Hamiltonians
//	H_LC_hypercube       []*Hamiltonian  largest cluster Hamiltonians
//	H_hypercube          []*Hamiltonian  whole percolated hypercube
//	H_PXP                []*Hamiltonian  whole percolated Fibonacci cube
//	paths_hypercube      [][]int      path lengths from the origin
//	paths_hypercube_LC   [][]int      path lengths within the largest cluster
package datasets
