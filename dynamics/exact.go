// SPDX-License-Identifier: MIT

package dynamics

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
)

// ExactHypercube returns the Hamming distance of a walker started at a vertex
// of the full N-cube:
//
//	Σ_{j=1}^{N} j · cos(t)^{2(N-j)} · sin(t)^{2j} · C(N, j)
//
// which sums to N·sin²t.
func ExactHypercube(n int, times []float64) []float64 {
	out := make([]float64, len(times))
	for k, t := range times {
		s, c := math.Sincos(t)
		s2, c2 := s*s, c*c
		var acc float64
		for j := 1; j <= n; j++ {
			acc += float64(j) * math.Pow(c2, float64(n-j)) * math.Pow(s2, float64(j)) * float64(combin.Binomial(n, j))
		}
		out[k] = acc
	}

	return out
}
