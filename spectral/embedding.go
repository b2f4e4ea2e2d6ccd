// SPDX-License-Identifier: MIT

package spectral

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"github.com/katalvlaran/percolate/matrix"
	"gonum.org/v1/gonum/mat"
)

// diagonalizeComplex factorizes S = [[A, -B], [B, A]] for h = A + iB and folds
// the doubled spectrum back to n eigenpairs.
//
// Implementation:
//   - Stage 1: build S (2n×2n, symmetric because A = Aᵀ and B = -Bᵀ).
//   - Stage 2: EigenSym on S; values ascending.
//   - Stage 3: group values whose consecutive gap is <= tol·max(1, |w|max).
//   - Stage 4: per cluster of size 2m lift each [x; y] to x + iy and keep m of
//     them by pivoted Gram-Schmidt; each kept vector's eigenvalue is its
//     Rayleigh quotient zᴴhz, sorted ascending inside the cluster.
func diagonalizeComplex(h *matrix.CDense, tol float64) (*Decomposition, error) {
	n := h.Rows()
	n2 := 2 * n
	raw := h.RawData()

	// Stage 1: embedding.
	s := make([]float64, n2*n2)
	var i, j int
	var a, b float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			a, b = real(raw[i*n+j]), imag(raw[i*n+j])
			s[i*n2+j] = a
			s[i*n2+n+j] = -b
			s[(n+i)*n2+j] = b
			s[(n+i)*n2+n+j] = a
		}
	}

	// Stage 2: real factorization.
	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(n2, s), true); !ok {
		return nil, ErrEigenFailed
	}
	w := es.Values(nil)
	var ev mat.Dense
	es.VectorsTo(&ev)

	// Stage 3: clusters.
	scale := 1.0
	for _, x := range w {
		scale = math.Max(scale, math.Abs(x))
	}
	gap := tol * scale

	values := make([]float64, 0, n)
	vecs, err := matrix.NewCDense(n, n)
	if err != nil {
		return nil, err
	}
	out := vecs.RawData()
	col := 0

	var lo, hi int
	for lo = 0; lo < n2; lo = hi {
		hi = lo + 1
		for hi < n2 && w[hi]-w[hi-1] <= gap {
			hi++
		}
		size := hi - lo
		if size%2 != 0 {
			return nil, fmt.Errorf("cluster [%d,%d): %w", lo, hi, ErrDegenerateEmbedding)
		}

		// Stage 4: lift and select.
		cand := make([][]complex128, size)
		var k int
		for k = 0; k < size; k++ {
			z := make([]complex128, n)
			for i = 0; i < n; i++ {
				z[i] = complex(ev.At(i, lo+k), ev.At(n+i, lo+k))
			}
			cand[k] = z
		}
		basis := pivotedGramSchmidt(cand, size/2)
		if len(basis) != size/2 {
			return nil, fmt.Errorf("cluster [%d,%d): %w", lo, hi, ErrDegenerateEmbedding)
		}
		rq := make([]float64, len(basis))
		for k = range basis {
			rq[k] = rayleigh(raw, n, basis[k])
		}
		sort.Sort(byValue{vals: rq, vecs: basis})
		for k = range basis {
			values = append(values, rq[k])
			for i = 0; i < n; i++ {
				out[i*n+col] = basis[k][i]
			}
			col++
		}
	}

	return &Decomposition{Values: values, Vectors: vecs}, nil
}

// pivotedGramSchmidt returns up to m orthonormal vectors spanning the complex
// span of cand. At every step the candidate with the largest residual norm is
// normalized and projected out of the remaining ones. cand is consumed.
//
// Complexity: O(m·len(cand)·n).
func pivotedGramSchmidt(cand [][]complex128, m int) [][]complex128 {
	basis := make([][]complex128, 0, m)
	used := make([]bool, len(cand))
	const eps = 1e-6

	var step, k, best int
	var bestNorm, nrm float64
	for step = 0; step < m; step++ {
		best, bestNorm = -1, 0
		for k = range cand {
			if used[k] {
				continue
			}
			if nrm = norm2(cand[k]); nrm > bestNorm {
				best, bestNorm = k, nrm
			}
		}
		if best < 0 || bestNorm < eps {
			break
		}
		used[best] = true
		q := cand[best]
		inv := complex(1/bestNorm, 0)
		for i := range q {
			q[i] *= inv
		}
		basis = append(basis, q)

		for k = range cand {
			if used[k] {
				continue
			}
			proj := vdot(q, cand[k])
			for i := range cand[k] {
				cand[k][i] -= proj * q[i]
			}
		}
	}

	return basis
}

func vdot(x, y []complex128) complex128 {
	var acc complex128
	for i := range x {
		acc += cmplx.Conj(x[i]) * y[i]
	}

	return acc
}

func norm2(x []complex128) float64 {
	var acc float64
	for _, v := range x {
		acc += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(acc)
}

// rayleigh returns Re(zᴴ·h·z) for a unit vector z; h is row-major n×n.
func rayleigh(h []complex128, n int, z []complex128) float64 {
	var acc, row complex128
	var i, j int
	for i = 0; i < n; i++ {
		row = 0
		for j = 0; j < n; j++ {
			row += h[i*n+j] * z[j]
		}
		acc += cmplx.Conj(z[i]) * row
	}

	return real(acc)
}

// byValue sorts eigenpairs of one cluster by eigenvalue.
type byValue struct {
	vals []float64
	vecs [][]complex128
}

func (b byValue) Len() int           { return len(b.vals) }
func (b byValue) Less(i, j int) bool { return b.vals[i] < b.vals[j] }
func (b byValue) Swap(i, j int) {
	b.vals[i], b.vals[j] = b.vals[j], b.vals[i]
	b.vecs[i], b.vecs[j] = b.vecs[j], b.vecs[i]
}
