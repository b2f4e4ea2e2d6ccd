// SPDX-License-Identifier: MIT

package quantum

import "errors"

var (
	// ErrInvalidSite indicates a start site outside [0, M).
	ErrInvalidSite = errors.New("quantum: site index out of range")

	// ErrDimensionMismatch indicates that states, operators or spectra disagree in size.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch")

	// ErrComplexExpectation indicates ⟨ψ|D|ψ⟩ has an imaginary part beyond
	// tolerance, i.e. D is not Hermitian.
	ErrComplexExpectation = errors.New("quantum: expectation value is not real")
)
