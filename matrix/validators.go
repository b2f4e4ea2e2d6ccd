// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/Hermitian checks here.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - The Hermitian check runs O(n²) over the upper triangle and the diagonal.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Shape → Structure).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *CDense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square.
//
// Errors: ErrNilMatrix if nil, ErrNonSquare if Rows != Cols.
// Complexity: O(1).
func ValidateSquare(m *CDense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil with equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b *CDense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.r != b.r || a.c != b.c {
		return validatorErrorf("ValidateSameShape", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompat ensures a.Cols == b.Rows for a product a·b.
// Complexity: O(1).
func ValidateMulCompat(a, b *CDense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompat", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
// Complexity: O(1).
func ValidateVecLen(x []complex128, n int) error {
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateHermitian checks that m is square and equal to its conjugate
// transpose within tol: |A[i,j] - conj(A[j,i])| <= tol for all i <= j.
// Diagonal entries therefore need |imag| <= tol/2.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNotHermitian (with the offending index).
// Complexity: O(n²).
func ValidateHermitian(m *CDense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if tol < 0 || math.IsNaN(tol) {
		tol = 0
	}
	n := m.r
	var i, j int
	var d float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			d = cmplx.Abs(m.data[i*n+j] - cmplx.Conj(m.data[j*n+i]))
			if d > tol {
				return validatorErrorf(fmt.Sprintf("ValidateHermitian(%d,%d)", i, j), ErrNotHermitian)
			}
		}
	}

	return nil
}
