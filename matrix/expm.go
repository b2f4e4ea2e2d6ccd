// SPDX-License-Identifier: MIT

package matrix

import "math/cmplx"

const (
	// expmScaleTarget is the 1-norm bound the scaled argument must reach before
	// the Taylor series is summed.
	expmScaleTarget = 0.5

	// expmMaxTerms caps the Taylor series; at ‖A‖₁ ≤ 0.5 twenty terms reach
	// double precision with a wide margin.
	expmMaxTerms = 30

	// expmTermTol stops the series once a term is negligible.
	expmTermTol = 1e-18
)

// Expm returns the matrix exponential e^m by scaling and squaring.
//
// Implementation:
//   - Stage 1: pick s ≥ 0 with ‖m‖₁ / 2^s ≤ 0.5.
//   - Stage 2: sum the Taylor series of e^(m/2^s) until the term norm is negligible.
//   - Stage 3: square the result s times.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare.
//
// Complexity:
//   - Time O((terms + s)·n³), Space O(n²).
//
// Notes:
//   - Used as the independent site-basis reference for eigenbasis evolution;
//     production paths never call it.
func Expm(m *CDense) (*CDense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	n := m.r

	// Stage 1: scaling.
	norm := norm1(m)
	s := 0
	scale := 1.0
	for norm/scale > expmScaleTarget {
		scale *= 2
		s++
	}
	a, err := Scale(m, complex(1/scale, 0))
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}

	// Stage 2: Taylor series.
	result, err := Identity(n)
	if err != nil {
		return nil, matrixErrorf(opExpm, err)
	}
	term := result.Clone()
	var k int
	for k = 1; k <= expmMaxTerms; k++ {
		if term, err = Mul(term, a); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
		inv := complex(1/float64(k), 0)
		for i := range term.data {
			term.data[i] *= inv
			result.data[i] += term.data[i]
		}
		if norm1(term) < expmTermTol {
			break
		}
	}

	// Stage 3: squaring.
	for k = 0; k < s; k++ {
		if result, err = Mul(result, result); err != nil {
			return nil, matrixErrorf(opExpm, err)
		}
	}

	return result, nil
}

// norm1 returns the maximum absolute column sum.
func norm1(m *CDense) float64 {
	var best, sum float64
	var i, j int
	for j = 0; j < m.c; j++ {
		sum = 0
		for i = 0; i < m.r; i++ {
			sum += cmplx.Abs(m.data[i*m.c+j])
		}
		if sum > best {
			best = sum
		}
	}

	return best
}
