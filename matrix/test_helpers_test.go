// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures for kernels.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/katalvlaran/percolate/matrix"
	"github.com/stretchr/testify/require"
)

// MustCDense allocates an r×c *CDense or fails the test.
func MustCDense(t *testing.T, r, c int) *matrix.CDense {
	t.Helper()
	m, err := matrix.NewCDense(r, c)
	require.NoError(t, err)

	return m
}

// MustFrom builds a CDense from row-major data or fails the test.
func MustFrom(t *testing.T, r, c int, data []complex128) *matrix.CDense {
	t.Helper()
	m, err := matrix.NewCDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m *matrix.CDense, i, j int) complex128 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// RandomHermitian returns c + cᴴ for a seeded random complex c. The result has
// genuinely complex eigenvectors, which is what catches a plain-transpose bug.
func RandomHermitian(t *testing.T, n int, seed int64) *matrix.CDense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]complex128, n*n)
	for k := range data {
		data[k] = complex(rng.Float64(), rng.Float64())
	}
	h := make([]complex128, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			h[i*n+j] = data[i*n+j] + cmplx.Conj(data[j*n+i])
		}
	}

	return MustFrom(t, n, n, h)
}

// RequireClose asserts element-wise closeness within atol.
func RequireClose(t *testing.T, want, got *matrix.CDense, atol float64) {
	t.Helper()
	ok, err := matrix.AllClose(got, want, 0, atol)
	require.NoError(t, err)
	require.Truef(t, ok, "matrices differ beyond %g\nwant:\n%v\ngot:\n%v", atol, want, got)
}
