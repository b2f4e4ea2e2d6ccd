// SPDX-License-Identifier: MIT

// Package matrix provides the complex linear-algebra primitives used by the
// spectral and quantum layers.
//
// The matrix package provides:
//
//   - CDense: a row-major complex128 matrix with safe At/Set accessors.
//   - CSR: a compressed sparse row matrix used to persist percolated
//     Hamiltonians compactly, with Dense() materialization.
//   - Kernels: Mul, ConjTranspose, Transpose, MatVec, VDot, Scale, Add, Sub,
//     Diagonal, AllClose and Expm (scaling and squaring).
//   - Validators: ValidateNotNil, ValidateSquare, ValidateHermitian, ...
//
// Conventions:
//
//   - Inputs are never mutated; every kernel allocates its result.
//   - Loop orders are fixed, so identical inputs give bit-identical outputs.
//   - Errors are package sentinels wrapped with an operation tag; match with errors.Is.
//
// Dense matrices cost O(n²) memory; keep n = 2^N modest (N ≲ 12) when
// materializing full hypercube Hamiltonians.
package matrix
