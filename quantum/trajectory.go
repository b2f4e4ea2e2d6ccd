// SPDX-License-Identifier: MIT

package quantum

import (
	"fmt"

	"github.com/katalvlaran/percolate/matrix"
	"github.com/katalvlaran/percolate/spectral"
)

// FindStartSite returns the index inside an extracted cluster Hamiltonian that
// corresponds to the origin the cluster was grown from.
//
// The percolation generator keeps full 2^n labels and grows clusters from
// ascending roots, so the root is the smallest label with at least one bond.
// Rule: the smallest index whose row has any non-zero entry; 0 when h has no
// bonds at all (isolated-site realization).
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, ErrDimensionMismatch when h
// is not 2^n × 2^n.
// Complexity: O(M²) worst case.
func FindStartSite(h *matrix.CDense, n int) (int, error) {
	if err := matrix.ValidateSquare(h); err != nil {
		return 0, fmt.Errorf("FindStartSite: %w", err)
	}
	m := h.Rows()
	if n < 0 || n > 62 || m != 1<<n {
		return 0, fmt.Errorf("FindStartSite: %d rows for n=%d: %w", m, n, ErrDimensionMismatch)
	}
	raw := h.RawData()
	var i, j int
	for i = 0; i < m; i++ {
		for j = 0; j < m; j++ {
			if raw[i*m+j] != 0 {
				return i, nil
			}
		}
	}

	return 0, nil
}

// Trajectory returns the Hamming distance from start of the state that begins
// localized at start, evaluated at every time in times.
//
// Implementation:
//   - Stage 1: psi0 = InitialState(V, start), D = HammingOperator(V, start).
//   - Stage 2: for each t, psi(t) = Evolve(values, psi0, t), hd = ⟨psi(t)|D|psi(t)⟩.
//
// Complexity: O(M³ + len(times)·M²).
func Trajectory(dec *spectral.Decomposition, start int, times []float64) ([]float64, error) {
	if dec == nil {
		return nil, fmt.Errorf("Trajectory: %w", matrix.ErrNilMatrix)
	}
	psi0, err := InitialState(dec.Vectors, start)
	if err != nil {
		return nil, err
	}
	d, err := HammingOperator(dec.Vectors, start)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(times))
	var psi []complex128
	for k, t := range times {
		if psi, err = Evolve(dec.Values, psi0, t); err != nil {
			return nil, err
		}
		if out[k], err = Expectation(psi, d); err != nil {
			return nil, fmt.Errorf("Trajectory(t=%g): %w", t, err)
		}
	}

	return out, nil
}
