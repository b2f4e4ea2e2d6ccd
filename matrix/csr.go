// SPDX-License-Identifier: MIT

// Package matrix - CSR: compressed sparse row storage for real square matrices.
//
// Purpose:
//   - Persist percolated Hamiltonians at O(nnz) cost instead of O(n²).
//   - Materialize into CDense only when a dense eigensolve is about to run.
//
// Layout:
//   - rowPtr has n+1 entries; row i occupies colIdx/val[rowPtr[i]:rowPtr[i+1]].
//   - Columns are strictly ascending within each row (no duplicates).

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opCSR      = "CSR"
	opCSRDense = "CSR.Dense"
)

// Entry is one (row, col, value) triplet used to assemble a CSR.
type Entry struct {
	Row, Col int
	Val      float64
}

// CSR is an immutable n×n compressed sparse row matrix with float64 values.
type CSR struct {
	n      int
	rowPtr []int
	colIdx []int
	val    []float64
}

// pairKey is an ordered pair (u,v) used to collapse duplicate triplets under a
// last-write-wins policy.
type pairKey struct {
	u int
	v int
}

// NewCSR assembles an n×n CSR from triplets.
//
// Implementation:
//   - Stage 1: validate n > 0, indices within [0,n), finite values.
//   - Stage 2: collapse duplicates (last write wins, input order).
//   - Stage 3: sort by (row, col) and build rowPtr by counting.
//
// Behavior highlights:
//   - Explicit zeros are kept; callers that want pure structure pass only non-zeros.
//
// Errors:
//   - ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf.
//
// Complexity:
//   - Time O(nnz log nnz + n), Space O(nnz + n).
func NewCSR(n int, entries []Entry) (*CSR, error) {
	if n <= 0 {
		return nil, matrixErrorf(opCSR, ErrInvalidDimensions)
	}
	pos := make(map[pairKey]int, len(entries))
	uniq := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Row < 0 || e.Row >= n || e.Col < 0 || e.Col >= n {
			return nil, matrixErrorf(opCSR, fmt.Errorf("(%d,%d): %w", e.Row, e.Col, ErrOutOfRange))
		}
		if math.IsNaN(e.Val) || math.IsInf(e.Val, 0) {
			return nil, matrixErrorf(opCSR, fmt.Errorf("(%d,%d): %w", e.Row, e.Col, ErrNaNInf))
		}
		k := pairKey{u: e.Row, v: e.Col}
		if at, ok := pos[k]; ok {
			uniq[at].Val = e.Val
			continue
		}
		pos[k] = len(uniq)
		uniq = append(uniq, e)
	}
	sort.Slice(uniq, func(a, b int) bool {
		if uniq[a].Row != uniq[b].Row {
			return uniq[a].Row < uniq[b].Row
		}
		return uniq[a].Col < uniq[b].Col
	})

	s := &CSR{
		n:      n,
		rowPtr: make([]int, n+1),
		colIdx: make([]int, len(uniq)),
		val:    make([]float64, len(uniq)),
	}
	for k, e := range uniq {
		s.rowPtr[e.Row+1]++
		s.colIdx[k] = e.Col
		s.val[k] = e.Val
	}
	for i := 0; i < n; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s, nil
}

// NewCSRFromParts wraps raw CSR arrays after validating the layout. The slices
// are retained, not copied; callers must not mutate them afterwards.
//
// Errors:
//   - ErrInvalidDimensions for n <= 0.
//   - ErrBadCSR for a malformed rowPtr, unsorted/duplicate columns or length mismatch.
//   - ErrOutOfRange, ErrNaNInf for bad entries.
//
// Complexity: O(n + nnz).
func NewCSRFromParts(n int, rowPtr, colIdx []int, val []float64) (*CSR, error) {
	if n <= 0 {
		return nil, matrixErrorf(opCSR, ErrInvalidDimensions)
	}
	if len(rowPtr) != n+1 || rowPtr[0] != 0 || len(colIdx) != len(val) || rowPtr[n] != len(colIdx) {
		return nil, matrixErrorf(opCSR, ErrBadCSR)
	}
	var i, k int
	for i = 0; i < n; i++ {
		if rowPtr[i+1] < rowPtr[i] {
			return nil, matrixErrorf(opCSR, ErrBadCSR)
		}
		for k = rowPtr[i]; k < rowPtr[i+1]; k++ {
			if colIdx[k] < 0 || colIdx[k] >= n {
				return nil, matrixErrorf(opCSR, fmt.Errorf("(%d,%d): %w", i, colIdx[k], ErrOutOfRange))
			}
			if k > rowPtr[i] && colIdx[k] <= colIdx[k-1] {
				return nil, matrixErrorf(opCSR, ErrBadCSR)
			}
			if math.IsNaN(val[k]) || math.IsInf(val[k], 0) {
				return nil, matrixErrorf(opCSR, fmt.Errorf("(%d,%d): %w", i, colIdx[k], ErrNaNInf))
			}
		}
	}

	return &CSR{n: n, rowPtr: rowPtr, colIdx: colIdx, val: val}, nil
}

// Dim returns n for an n×n matrix.
func (s *CSR) Dim() int { return s.n }

// NNZ returns the number of stored entries.
func (s *CSR) NNZ() int { return len(s.colIdx) }

// Parts exposes the raw arrays (shared, read-only) for serialization.
func (s *CSR) Parts() (rowPtr, colIdx []int, val []float64) {
	return s.rowPtr, s.colIdx, s.val
}

// Row returns the column indices and values of row i (shared, read-only).
// An out-of-range i yields empty slices.
func (s *CSR) Row(i int) ([]int, []float64) {
	if i < 0 || i >= s.n {
		return nil, nil
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]

	return s.colIdx[lo:hi], s.val[lo:hi]
}

// At returns entry (i,j), zero when not stored.
// Complexity: O(log deg(i)).
func (s *CSR) At(i, j int) (float64, error) {
	if i < 0 || i >= s.n || j < 0 || j >= s.n {
		return 0, matrixErrorf(opCSR, ErrOutOfRange)
	}
	cols, vals := s.Row(i)
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return vals[k], nil
	}

	return 0, nil
}

// Dense materializes s into an n×n CDense.
// Complexity: O(n² + nnz).
func (s *CSR) Dense() (*CDense, error) {
	m, err := NewCDense(s.n, s.n)
	if err != nil {
		return nil, matrixErrorf(opCSRDense, err)
	}
	var i, k int
	for i = 0; i < s.n; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			m.data[i*s.n+s.colIdx[k]] = complex(s.val[k], 0)
		}
	}

	return m, nil
}

// IsSymmetric reports whether s[i,j] == s[j,i] for every stored entry.
// Complexity: O(nnz log d).
func (s *CSR) IsSymmetric() bool {
	var i, k int
	for i = 0; i < s.n; i++ {
		for k = s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			v, err := s.At(s.colIdx[k], i)
			if err != nil || v != s.val[k] {
				return false
			}
		}
	}

	return true
}

// Equal reports structural and numeric equality.
func (s *CSR) Equal(o *CSR) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.n != o.n || len(s.colIdx) != len(o.colIdx) {
		return false
	}
	for i := range s.rowPtr {
		if s.rowPtr[i] != o.rowPtr[i] {
			return false
		}
	}
	for k := range s.colIdx {
		if s.colIdx[k] != o.colIdx[k] || s.val[k] != o.val[k] {
			return false
		}
	}

	return true
}
