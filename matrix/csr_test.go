// SPDX-License-Identifier: MIT
package matrix_test

import (
	"testing"

	"github.com/katalvlaran/percolate/matrix"
	"github.com/stretchr/testify/require"
)

func TestNewCSR_SortsAndCollapses(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewCSR(3, []matrix.Entry{
		{Row: 2, Col: 0, Val: 1},
		{Row: 0, Col: 2, Val: 1},
		{Row: 0, Col: 1, Val: 5},
		{Row: 0, Col: 1, Val: 7}, // last write wins
	})
	require.NoError(t, err)
	require.Equal(t, 3, s.Dim())
	require.Equal(t, 3, s.NNZ())

	cols, vals := s.Row(0)
	require.Equal(t, []int{1, 2}, cols)
	require.Equal(t, []float64{7, 1}, vals)

	v, err := s.At(2, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
	v, err = s.At(1, 1)
	require.NoError(t, err)
	require.Zero(t, v)

	require.False(t, s.IsSymmetric())
}

func TestNewCSR_Errors(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewCSR(0, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewCSR(2, []matrix.Entry{{Row: 2, Col: 0, Val: 1}})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestCSR_DenseRoundTripAndParts(t *testing.T) {
	t.Parallel()

	s, err := matrix.NewCSR(4, []matrix.Entry{
		{Row: 0, Col: 1, Val: 1}, {Row: 1, Col: 0, Val: 1},
		{Row: 2, Col: 3, Val: 1}, {Row: 3, Col: 2, Val: 1},
	})
	require.NoError(t, err)
	require.True(t, s.IsSymmetric())

	d, err := s.Dense()
	require.NoError(t, err)
	require.NoError(t, matrix.ValidateHermitian(d, 0))
	require.Equal(t, complex128(1), MustAt(t, d, 2, 3))
	require.Zero(t, MustAt(t, d, 0, 3))

	rp, ci, v := s.Parts()
	back, err := matrix.NewCSRFromParts(4, rp, ci, v)
	require.NoError(t, err)
	require.True(t, s.Equal(back))
}

func TestNewCSRFromParts_RejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rowPtr []int
		colIdx []int
		val    []float64
		want   error
	}{
		{"short rowPtr", []int{0, 1}, []int{0}, []float64{1}, matrix.ErrBadCSR},
		{"decreasing rowPtr", []int{0, 1, 0}, []int{0}, []float64{1}, matrix.ErrBadCSR},
		{"duplicate column", []int{0, 2, 2}, []int{1, 1}, []float64{1, 1}, matrix.ErrBadCSR},
		{"column out of range", []int{0, 1, 1}, []int{5}, []float64{1}, matrix.ErrOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.NewCSRFromParts(2, tc.rowPtr, tc.colIdx, tc.val)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
