// SPDX-License-Identifier: MIT

// Package spectral diagonalizes Hermitian matrices and exposes the basis-change
// operators between the site basis and the eigenbasis.
//
// What:
//   - Diagonalize(h) returns a Decomposition: ascending real eigenvalues and a
//     unitary eigenvector matrix V whose columns are orthonormal eigenvectors.
//   - Forward(V) returns V (eigenbasis → site basis).
//   - Backward(V) returns Vᴴ, the conjugate transpose (site basis → eigenbasis).
//
// Invariant:
//
//	Backward(V) · H · Forward(V) = diag(eigenvalues)
//
// How:
//   - Real symmetric input goes straight to gonum's mat.EigenSym.
//   - Complex Hermitian input H = A + iB is embedded into the real symmetric
//     2n×2n matrix S = [[A, -B], [B, A]]. Every eigenvalue of H appears twice
//     in S, and each eigenvector [x; y] of S yields the eigenvector x + iy of H.
//     Within each degenerate cluster, half of the lifted vectors are chosen by
//     pivoted complex Gram-Schmidt, which yields an orthonormal basis of the
//     complex eigenspace.
//
// Pitfall:
//   - Plain transpose is not the inverse of a complex unitary matrix. Backward
//     always conjugates.
//
// Errors:
//   - matrix.ErrNotHermitian when the input fails the Hermitian check.
//   - ErrEigenFailed when the real eigensolver does not converge.
//   - ErrDegenerateEmbedding when an eigenvalue cluster of S has odd size.
package spectral
