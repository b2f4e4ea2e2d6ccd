// SPDX-License-Identifier: MIT

package quantum

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/percolate/matrix"
	"github.com/katalvlaran/percolate/spectral"
)

// HammingDistances returns d[i] = popcount(i XOR origin) for i in [0, m).
// With origin 0 this is the Hamming weight of each label, i.e. the graph
// distance from the all-zero corner of the full hypercube.
//
// Errors: ErrInvalidSite.
func HammingDistances(m, origin int) ([]float64, error) {
	if m <= 0 || origin < 0 || origin >= m {
		return nil, fmt.Errorf("HammingDistances(%d, %d): %w", m, origin, ErrInvalidSite)
	}
	d := make([]float64, m)
	for i := range d {
		d[i] = float64(bits.OnesCount(uint(i ^ origin)))
	}

	return d, nil
}

// HammingOperator returns Vᴴ·diag(HammingDistances(M, origin))·V, the Hamming
// distance observable in the eigenbasis of V.
//
// Implementation:
//   - Stage 1: W = diag(d)·V by scaling row i of V with d[i].
//   - Stage 2: D = Vᴴ·W.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrInvalidSite.
// Complexity: O(M³).
func HammingOperator(v *matrix.CDense, origin int) (*matrix.CDense, error) {
	if err := matrix.ValidateSquare(v); err != nil {
		return nil, fmt.Errorf("HammingOperator: %w", err)
	}
	m := v.Rows()
	d, err := HammingDistances(m, origin)
	if err != nil {
		return nil, err
	}

	w := v.Clone()
	raw := w.RawData()
	var i, j int
	for i = 0; i < m; i++ {
		s := complex(d[i], 0)
		for j = 0; j < m; j++ {
			raw[i*m+j] *= s
		}
	}
	vh, err := spectral.Backward(v)
	if err != nil {
		return nil, fmt.Errorf("HammingOperator: %w", err)
	}
	out, err := matrix.Mul(vh, w)
	if err != nil {
		return nil, fmt.Errorf("HammingOperator: %w", err)
	}

	return out, nil
}
