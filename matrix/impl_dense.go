// SPDX-License-Identifier: MIT

// Package matrix - CDense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major complex buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - NewCDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform CDense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "CDense.<method>(row,col): %w".
//
// Complexity:
//   - Time O(1), Space O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CDense.%s(%d,%d): %w", method, row, col, err)
}

// CDense is a concrete row-major complex matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type CDense struct {
	r, c int          // row and column counts (> 0)
	data []complex128 // contiguous row-major storage (len == r*c)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*CDense)(nil)

// NewCDense creates an r×c zero matrix using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for CDense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// NewCDenseFrom builds an r×c matrix from a row-major slice. The slice is copied,
// so later mutation of data does not affect the matrix.
//
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//   - ErrNaNInf when any component is NaN or ±Inf.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewCDenseFrom(rows, cols int, data []complex128) (*CDense, error) {
	m, err := NewCDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	var k int
	for k = range data {
		if !finite(data[k]) {
			return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, data)

	return m, nil
}

// FromReal lifts a row-major float64 slice into a CDense with zero imaginary parts.
// Complexity: O(r*c).
func FromReal(rows, cols int, data []float64) (*CDense, error) {
	if len(data) != rows*cols {
		return nil, ErrDimensionMismatch
	}
	buf := make([]complex128, len(data))
	for k, v := range data {
		buf[k] = complex(v, 0)
	}

	return NewCDenseFrom(rows, cols, buf)
}

// Identity returns the n×n identity matrix.
// Complexity: O(n²).
func Identity(n int) (*CDense, error) {
	m, err := NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	var i int
	for i = 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m, nil
}

// Rows returns the row count. No side effects.
func (m *CDense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
func (m *CDense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *CDense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Complexity: O(1).
func (m *CDense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or a wrapped ErrOutOfRange.
// Never panics on out-of-range indices.
// Complexity: O(1).
func (m *CDense) At(row, col int) (complex128, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
//
// Errors:
//   - ErrOutOfRange when out of bounds.
//   - ErrNaNInf when v has a NaN or ±Inf component.
//
// Complexity: O(1).
func (m *CDense) Set(row, col int, v complex128) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if !finite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy.
// Complexity: O(r*c).
func (m *CDense) Clone() *CDense {
	buf := make([]complex128, len(m.data))
	copy(buf, m.data)

	return &CDense{r: m.r, c: m.c, data: buf}
}

// RawData exposes the row-major backing slice without copying.
// Mutations through the slice are visible in m.
func (m *CDense) RawData() []complex128 { return m.data }

// Col returns a copy of column j.
// Complexity: O(r).
func (m *CDense) Col(j int) ([]complex128, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	out := make([]complex128, m.r)
	var i int
	for i = 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// IsReal reports whether every entry has |imag| <= tol.
// Complexity: O(r*c).
func (m *CDense) IsReal(tol float64) bool {
	for _, v := range m.data {
		if math.Abs(imag(v)) > tol {
			return false
		}
	}

	return true
}

// String implements fmt.Stringer for debugging.
// Complexity: O(r*c).
func (m *CDense) String() string {
	var b strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// finite reports whether both components of v are finite.
func finite(v complex128) bool {
	return !cmplx.IsNaN(v) && !cmplx.IsInf(v)
}
