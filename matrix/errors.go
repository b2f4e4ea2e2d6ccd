// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Kernels return these sentinels (optionally wrapped with an operation
// tag via matrixErrorf) and tests check them via errors.Is.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines stay greppable.
// Wrap with fmt.Errorf("ctx: %w", ErrX) at the boundary; callers match with errors.Is.
//
// ERROR PRIORITY (enforced in validators):
// nil -> shape/index -> dimension mismatch -> structural (Hermitian) -> numeric.

var (
	// ErrNilMatrix indicates that a nil matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// At/Set return this instead of panicking.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Mul where
	// a.Cols != b.Rows, or a vector whose length differs from the matrix width.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNotHermitian signals |A[i,j] - conj(A[j,i])| > tol for some (i,j).
	ErrNotHermitian = errors.New("matrix: matrix is not Hermitian within tol")

	// ErrNaNInf signals a NaN or ±Inf component where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrBadCSR reports a structurally invalid compressed sparse row layout.
	ErrBadCSR = errors.New("matrix: invalid CSR layout")
)
