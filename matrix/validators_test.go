// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/percolate/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		a, b    *matrix.CDense
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"first nil", nil, MustCDense(t, 2, 2), matrix.ErrNilMatrix},
		{"second nil", MustCDense(t, 2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", MustCDense(t, 2, 3), MustCDense(t, 2, 3), nil},
		{"row mismatch", MustCDense(t, 2, 3), MustCDense(t, 3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", MustCDense(t, 2, 3), MustCDense(t, 2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Truef(t, errors.Is(err, tc.wantErr), "expected errors.Is(%v, %v)", err, tc.wantErr)
		})
	}
}

func TestValidateSquare(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	require.ErrorIs(t, matrix.ValidateSquare(MustCDense(t, 2, 3)), matrix.ErrNonSquare)
	require.NoError(t, matrix.ValidateSquare(MustCDense(t, 4, 4)))
}

func TestValidateHermitian(t *testing.T) {
	t.Parallel()

	t.Run("random hermitian", func(t *testing.T) {
		require.NoError(t, matrix.ValidateHermitian(RandomHermitian(t, 9, 7), 1e-12))
	})

	t.Run("complex symmetric is not hermitian", func(t *testing.T) {
		// [[0, i],[i, 0]] is symmetric but not Hermitian.
		m := MustFrom(t, 2, 2, []complex128{0, 1i, 1i, 0})
		require.ErrorIs(t, matrix.ValidateHermitian(m, 1e-12), matrix.ErrNotHermitian)
	})

	t.Run("imaginary diagonal", func(t *testing.T) {
		m := MustFrom(t, 2, 2, []complex128{1i, 0, 0, 1})
		require.ErrorIs(t, matrix.ValidateHermitian(m, 1e-12), matrix.ErrNotHermitian)
	})

	t.Run("within tolerance", func(t *testing.T) {
		m := MustFrom(t, 2, 2, []complex128{1, 2 + 1i, 2 - 1i + 1e-13, 3})
		require.NoError(t, matrix.ValidateHermitian(m, 1e-12))
	})

	t.Run("non square", func(t *testing.T) {
		require.ErrorIs(t, matrix.ValidateHermitian(MustCDense(t, 2, 3), 0), matrix.ErrNonSquare)
	})
}

func TestValidateVecLen(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen(make([]complex128, 3), 3))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 1), matrix.ErrDimensionMismatch)
}
