// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"

	"github.com/katalvlaran/percolate/matrix"
	"gonum.org/v1/gonum/mat"
)

const (
	opDiagonalize = "Diagonalize"
	opBackward    = "Backward"
)

func spectralErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Diagonalize computes the spectral decomposition of a Hermitian matrix.
//
// Implementation:
//   - Stage 1: validate h with matrix.ValidateHermitian (fail fast).
//   - Stage 2: if every entry is exactly real, factorize Re(h) with mat.EigenSym.
//   - Stage 3: otherwise factorize the real 2n×2n embedding and fold each
//     degenerate cluster back into an orthonormal complex eigenbasis.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrNotHermitian.
//   - ErrEigenFailed, ErrDegenerateEmbedding.
//
// Complexity:
//   - Time O(n³) real, O((2n)³) complex; Space O(n²).
func Diagonalize(h *matrix.CDense, opts ...Option) (*Decomposition, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := matrix.ValidateHermitian(h, o.hermitianTol); err != nil {
		return nil, spectralErrorf(opDiagonalize, err)
	}

	var (
		dec *Decomposition
		err error
	)
	if h.IsReal(0) {
		dec, err = diagonalizeReal(h)
	} else {
		dec, err = diagonalizeComplex(h, o.clusterTol)
	}
	if err != nil {
		return nil, spectralErrorf(opDiagonalize, err)
	}

	return dec, nil
}

// diagonalizeReal runs EigenSym on the real part of h.
func diagonalizeReal(h *matrix.CDense) (*Decomposition, error) {
	n := h.Rows()
	raw := h.RawData()
	data := make([]float64, n*n)
	for k, v := range raw {
		data[k] = real(v)
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n, data), true); !ok {
		return nil, ErrEigenFailed
	}
	values := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	vecs, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	out := vecs.RawData()
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			out[i*n+j] = complex(ev.At(i, j), 0)
		}
	}

	return &Decomposition{Values: values, Vectors: vecs}, nil
}

// Forward returns the eigenbasis → site basis operator, V itself.
func Forward(v *matrix.CDense) *matrix.CDense { return v }

// Backward returns the site basis → eigenbasis operator Vᴴ.
//
// Errors:
//   - matrix.ErrNilMatrix.
func Backward(v *matrix.CDense) (*matrix.CDense, error) {
	vh, err := matrix.ConjTranspose(v)
	if err != nil {
		return nil, spectralErrorf(opBackward, err)
	}

	return vh, nil
}

// Diagonal returns Backward(V) · h · Forward(V), which equals diag(Values) up to
// rounding when dec decomposes h.
func Diagonal(h *matrix.CDense, dec *Decomposition) (*matrix.CDense, error) {
	vh, err := Backward(dec.Vectors)
	if err != nil {
		return nil, err
	}
	hv, err := matrix.Mul(h, Forward(dec.Vectors))
	if err != nil {
		return nil, spectralErrorf(opBackward, err)
	}
	d, err := matrix.Mul(vh, hv)
	if err != nil {
		return nil, spectralErrorf(opBackward, err)
	}

	return d, nil
}
