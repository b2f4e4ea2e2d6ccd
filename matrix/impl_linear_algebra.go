// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on CDense values: products,
// conjugate transposition, matrix-vector products, inner products and scaling.
// All functions perform strict fail-fast validation and return clear errors on
// dimension mismatches.
//
// Purpose:
//   - Declare the canonical complex kernels used by spectral and quantum.
//   - Define operation tags for uniform error reporting.

package matrix

import (
	"fmt"
	"math/cmplx"
)

// Operation name constants for unified error wrapping.
const (
	opAdd           = "Add"
	opSub           = "Sub"
	opMul           = "Mul"
	opTranspose     = "Transpose"
	opConjTranspose = "ConjTranspose"
	opScale         = "Scale"
	opMatVec        = "MatVec"
	opVDot          = "VDot"
	opDiagonal      = "Diagonal"
	opAllClose      = "AllClose"
	opExpm          = "Expm"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub computes out = a + sign*b for sign ∈ {+1, -1}.
// Inputs must have identical shapes; operands are not mutated.
// Complexity: O(r*c).
func addSub(a, b *CDense, sign complex128, opTag string) (*CDense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := &CDense{r: a.r, c: a.c, data: make([]complex128, len(a.data))}
	var k int
	for k = range a.data {
		out.data[k] = a.data[k] + sign*b.data[k]
	}

	return out, nil
}

// Add returns a + b.
func Add(a, b *CDense) (*CDense, error) { return addSub(a, b, 1, opAdd) }

// Sub returns a - b.
func Sub(a, b *CDense) (*CDense, error) { return addSub(a, b, -1, opSub) }

// Mul returns the product a·b.
//
// Implementation:
//   - Stage 1: ValidateMulCompat(a, b).
//   - Stage 2: i-k-j loop over the flat buffers; the k-loop hoists a[i,k] and
//     skips exact zeros, which dominate percolated Hamiltonians.
//
// Determinism:
//   - Fixed i→k→j order.
//
// Complexity:
//   - Time O(r·k·c), Space O(r·c).
func Mul(a, b *CDense) (*CDense, error) {
	if err := ValidateMulCompat(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	rows, inner, cols := a.r, a.c, b.c
	out := &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}
	var i, k, j, aBase, bBase, oBase int
	var aik complex128
	for i = 0; i < rows; i++ {
		aBase = i * inner
		oBase = i * cols
		for k = 0; k < inner; k++ {
			aik = a.data[aBase+k]
			if aik == 0 {
				continue
			}
			bBase = k * cols
			for j = 0; j < cols; j++ {
				out.data[oBase+j] += aik * b.data[bBase+j]
			}
		}
	}

	return out, nil
}

// ConjTranspose returns the conjugate transpose mᴴ (conjugate, then transpose).
// For real input this equals Transpose; for complex input it does not.
// Complexity: O(r*c).
func ConjTranspose(m *CDense) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opConjTranspose, err)
	}
	out := &CDense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = cmplx.Conj(m.data[i*m.c+j])
		}
	}

	return out, nil
}

// Transpose returns the plain transpose mᵀ (no conjugation).
// Complexity: O(r*c).
func Transpose(m *CDense) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := &CDense{r: m.c, c: m.r, data: make([]complex128, len(m.data))}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// Scale returns alpha·m.
// Complexity: O(r*c).
func Scale(m *CDense, alpha complex128) (*CDense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := &CDense{r: m.r, c: m.c, data: make([]complex128, len(m.data))}
	for k, v := range m.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// MatVec returns y = m·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != Cols).
//
// Complexity:
//   - Time O(r*c), Space O(r).
func MatVec(m *CDense, x []complex128) ([]complex128, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]complex128, m.r)
	var i, j, base int
	var acc complex128
	for i = 0; i < m.r; i++ {
		acc = 0
		base = i * m.c
		for j = 0; j < m.c; j++ {
			acc += m.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// VDot returns the Hermitian inner product ⟨x|y⟩ = Σ conj(x_i)·y_i.
// Complexity: O(n).
func VDot(x, y []complex128) (complex128, error) {
	if err := ValidateVecLen(y, len(x)); err != nil {
		return 0, matrixErrorf(opVDot, err)
	}
	var acc complex128
	for i := range x {
		acc += cmplx.Conj(x[i]) * y[i]
	}

	return acc, nil
}

// Diagonal builds the square matrix diag(d).
// Complexity: O(n²) memory, O(n) writes.
func Diagonal(d []float64) (*CDense, error) {
	n := len(d)
	m, err := NewCDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	for i, v := range d {
		m.data[i*n+i] = complex(v, 0)
	}

	return m, nil
}

// DiagOf returns the main diagonal of a square matrix.
// Complexity: O(n).
func DiagOf(m *CDense) ([]complex128, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opDiagonal, err)
	}
	out := make([]complex128, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+i]
	}

	return out, nil
}

// AllClose reports whether |a[i,j]-b[i,j]| <= atol + rtol·|b[i,j]| everywhere.
// Complexity: O(r*c).
func AllClose(a, b *CDense, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	for k := range a.data {
		if cmplx.Abs(a.data[k]-b.data[k]) > atol+rtol*cmplx.Abs(b.data[k]) {
			return false, nil
		}
	}

	return true, nil
}
