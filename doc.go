// SPDX-License-Identifier: MIT

// Package percolate studies transport on bond-percolated hypercubes.
//
// Two subsystems carry the work:
//
//   - A dataset cache (cache, datasets) that memoizes expensive random
//     realizations (cluster sizes, cluster Hamiltonians, path lengths) under
//     canonical parameter-derived names, so repeated analyses never recompute
//     them.
//   - A dynamics engine (spectral, quantum, dynamics) that evolves a localized
//     excitation on the largest cluster of each realization and averages its
//     mean Hamming distance over disorder.
//
// Layout:
//
//	matrix/       complex dense (CDense) and sparse (CSR) matrices, kernels, Expm
//	spectral/     Hermitian diagonalization and basis changes
//	quantum/      initial state, evolution, Hamming observable, start site
//	percolation/  hypercube and PXP bond-percolation generators
//	cache/        keys, stores, blob framing, Fetch/Lookup (badgerstore, miniostore)
//	datasets/     the six dataset families over one generate-or-load path
//	dynamics/     disorder-averaged mean Hamming distance
//	stats/        cluster numbers, mean sizes, w_s
//	config/       YAML configuration with environment overrides
//	logging/      slog construction
//	cmd/percolate command-line front end
//
// Quick start:
//
//	c := cache.New(cache.NewMemoryStore())
//	a := dynamics.NewAverager(datasets.New(c, datasets.WithSeed(1)))
//	mhd, err := a.MeanHammingDistance(ctx, dynamics.Params{N: 7, NCoeff: 2, TMax: 1e3, NT: 30, NR: 50, Log: true})
package percolate
