// SPDX-License-Identifier: MIT

// Package dynamics averages quantum walks over percolation disorder.
//
// MeanHammingDistance drives NR largest-cluster realizations of the bond
// percolated N-cube (p = NCoeff/N) through spectral.Diagonalize and the
// quantum state engine, and returns the disorder-averaged Hamming distance of
// a walker started at the cluster's origin:
//
//	MHD(t) = (1/NR) Σ_r ⟨ψ_r(t)| D_r |ψ_r(t)⟩
//
// Both the realizations and the final curve are memoized in the cache; the
// curve under MHD_LC_hypercube with the extra parameters NT, TMAX and LOG.
//
// Edge cases:
//   - NCoeff = 0: every realization is an isolated site; the curve is zero.
//   - NCoeff = N: the cluster is the whole cube; the curve equals
//     ExactHypercube, N·sin²t.
package dynamics
