// SPDX-License-Identifier: MIT

package spectral

import (
	"errors"

	"github.com/katalvlaran/percolate/matrix"
)

// Sentinel errors returned by Diagonalize.
var (
	// ErrEigenFailed indicates that the underlying symmetric eigensolver did not converge.
	ErrEigenFailed = errors.New("spectral: eigen decomposition did not converge")

	// ErrDegenerateEmbedding indicates that the eigenvalues of the real embedding
	// could not be paired, i.e. a cluster of numerically equal values has odd size.
	ErrDegenerateEmbedding = errors.New("spectral: unpaired eigenvalue in complex embedding")
)

const (
	// DefaultHermitianTol is the absolute tolerance of the Hermitian pre-check.
	DefaultHermitianTol = 1e-10

	// DefaultClusterTol is the relative gap below which two eigenvalues of the
	// real embedding are treated as one degenerate cluster.
	DefaultClusterTol = 1e-8
)

// Decomposition is the spectral decomposition H = V · diag(Values) · Vᴴ.
// Values are ascending; column k of Vectors is the eigenvector of Values[k].
type Decomposition struct {
	Values  []float64
	Vectors *matrix.CDense
}

// Size returns the dimension of the decomposed matrix.
func (d *Decomposition) Size() int { return len(d.Values) }

// Option configures Diagonalize.
type Option func(*options)

type options struct {
	hermitianTol float64
	clusterTol   float64
}

func defaultOptions() options {
	return options{hermitianTol: DefaultHermitianTol, clusterTol: DefaultClusterTol}
}

// WithTolerance sets the absolute tolerance of the Hermitian check.
// Panics on a negative or NaN value (programmer error).
func WithTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic("spectral: WithTolerance requires tol >= 0")
	}

	return func(o *options) { o.hermitianTol = tol }
}

// WithClusterTolerance sets the relative eigenvalue gap used to group the
// doubled spectrum of the complex embedding.
// Panics on a non-positive or NaN value.
func WithClusterTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("spectral: WithClusterTolerance requires tol > 0")
	}

	return func(o *options) { o.clusterTol = tol }
}
