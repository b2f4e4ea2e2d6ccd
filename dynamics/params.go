// SPDX-License-Identifier: MIT

package dynamics

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/percolate/cache"
	"gonum.org/v1/gonum/floats"
)

// Family is the cache family of averaged curves.
const Family = "MHD_LC_hypercube"

// MaxN bounds N; the eigensolve is dense in 2^N.
const MaxN = 12

// ErrInvalidParams indicates parameters outside their domains.
var ErrInvalidParams = errors.New("dynamics: invalid parameters")

// Params describes one disorder-averaged curve.
type Params struct {
	N      int     `validate:"min=1"`
	NCoeff float64 `validate:"gte=0"`
	TMax   float64 `validate:"gt=0"`
	NT     int     `validate:"min=1"`
	NR     int     `validate:"min=1"`
	Log    bool
}

var validate = validator.New()

// Validate checks the field domains, N <= MaxN, NCoeff <= N, and TMax >= 1 on
// a log grid.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.N > MaxN {
		return fmt.Errorf("N %d > %d: %w", p.N, MaxN, ErrInvalidParams)
	}
	if p.NCoeff > float64(p.N) {
		return fmt.Errorf("NCoeff %g > N %d: %w", p.NCoeff, p.N, ErrInvalidParams)
	}
	if p.Log && p.TMax < 1 {
		return fmt.Errorf("log grid needs TMax >= 1, got %g: %w", p.TMax, ErrInvalidParams)
	}

	return nil
}

// P returns the bond retention probability NCoeff/N.
func (p Params) P() float64 { return p.NCoeff / float64(p.N) }

// Key returns the cache key of the curve.
func (p Params) Key() cache.Key {
	return cache.NewKey(Family, p.N, p.NR, p.P()).
		With("NT", p.NT).
		With("TMAX", p.TMax).
		With("LOG", p.Log)
}

// Times returns the time grid of p.
func (p Params) Times() []float64 {
	return TimeGrid(p.TMax, p.NT, p.Log)
}

// TimeGrid returns nt times: logarithmically spaced over [1, tmax] when log is
// set, linearly spaced over [0, tmax] otherwise. A single point is the left
// end of the range. nt < 1 yields nil.
func TimeGrid(tmax float64, nt int, log bool) []float64 {
	if nt < 1 {
		return nil
	}
	lo := 0.0
	if log {
		lo = 1
	}
	out := make([]float64, nt)
	switch {
	case nt == 1:
		out[0] = lo
	case log:
		floats.LogSpan(out, lo, tmax)
	default:
		floats.Span(out, lo, tmax)
	}

	return out
}
