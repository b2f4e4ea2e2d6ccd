// SPDX-License-Identifier: MIT

package quantum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/percolate/matrix"
)

// expectationImagTol bounds |Im⟨ψ|D|ψ⟩| relative to max(1, |Re|).
const expectationImagTol = 1e-8

// InitialState returns the site-basis unit vector at start expressed in the
// eigenbasis of V, i.e. Vᴴ·e_start. Its k-th entry is conj(V[start, k]).
//
// Errors: matrix.ErrNilMatrix, ErrInvalidSite.
// Complexity: O(M).
func InitialState(v *matrix.CDense, start int) ([]complex128, error) {
	if err := matrix.ValidateSquare(v); err != nil {
		return nil, fmt.Errorf("InitialState: %w", err)
	}
	m := v.Rows()
	if start < 0 || start >= m {
		return nil, fmt.Errorf("InitialState(%d): %w", start, ErrInvalidSite)
	}
	raw := v.RawData()
	psi := make([]complex128, m)
	for k := range psi {
		psi[k] = cmplx.Conj(raw[start*m+k])
	}

	return psi, nil
}

// PhaseOperator returns the diagonal of exp(-i·t·diag(values)).
func PhaseOperator(values []float64, t float64) []complex128 {
	out := make([]complex128, len(values))
	for k, e := range values {
		s, c := math.Sincos(-t * e)
		out[k] = complex(c, s)
	}

	return out
}

// Evolve returns psi(t) = exp(-i·t·λ) ⊙ psi0 in the eigenbasis.
//
// Errors: ErrDimensionMismatch when len(values) != len(psi0).
// Complexity: O(M).
func Evolve(values []float64, psi0 []complex128, t float64) ([]complex128, error) {
	if len(values) != len(psi0) {
		return nil, fmt.Errorf("Evolve: %d eigenvalues, %d amplitudes: %w", len(values), len(psi0), ErrDimensionMismatch)
	}
	out := PhaseOperator(values, t)
	for k := range out {
		out[k] *= psi0[k]
	}

	return out, nil
}

// Norm2 returns ⟨ψ|ψ⟩.
func Norm2(psi []complex128) float64 {
	var acc float64
	for _, v := range psi {
		acc += real(v)*real(v) + imag(v)*imag(v)
	}

	return acc
}

// Expectation returns ⟨ψ|D|ψ⟩, which must be real for Hermitian D.
//
// Errors:
//   - ErrDimensionMismatch, matrix.ErrNilMatrix.
//   - ErrComplexExpectation when the imaginary part exceeds tolerance.
//
// Complexity: O(M²).
func Expectation(psi []complex128, d *matrix.CDense) (float64, error) {
	dpsi, err := matrix.MatVec(d, psi)
	if err != nil {
		return 0, fmt.Errorf("Expectation: %w", err)
	}
	if len(dpsi) != len(psi) {
		return 0, fmt.Errorf("Expectation: %w", ErrDimensionMismatch)
	}
	z, err := matrix.VDot(psi, dpsi)
	if err != nil {
		return 0, fmt.Errorf("Expectation: %w", err)
	}
	if math.Abs(imag(z)) > expectationImagTol*math.Max(1, math.Abs(real(z))) {
		return 0, fmt.Errorf("Expectation: imag %g: %w", imag(z), ErrComplexExpectation)
	}

	return real(z), nil
}
