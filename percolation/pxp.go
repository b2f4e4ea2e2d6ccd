// SPDX-License-Identifier: MIT

package percolation

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/percolate/matrix"
)

// PXPSites returns the n-bit labels with no two adjacent set bits (open
// boundary), in ascending order. There are F(n+2) of them.
//
// Errors: ErrInvalidArgs.
// Complexity: O(2^n).
func PXPSites(n int) ([]int, error) {
	if err := checkArgs(n, 0); err != nil {
		return nil, fmt.Errorf("PXPSites: %w", err)
	}
	m := 1 << n
	sites := make([]int, 0, fibonacci(n+2))
	for i := 0; i < m; i++ {
		if i&(i>>1) == 0 {
			sites = append(sites, i)
		}
	}

	return sites, nil
}

// pxpFlipAllowed reports whether flipping bit i of u stays in the PXP basis.
func pxpFlipAllowed(u, i int) bool {
	v := u ^ (1 << i)

	return v&(v>>1) == 0
}

// pxpIndex returns the position of label in the ascending sites list.
func pxpIndex(sites []int, label int) int {
	return sort.SearchInts(sites, label)
}

// pxpWalker grows clusters on the Fibonacci cube over site indices.
type pxpWalker struct {
	s       *Sampler
	n       int
	p       float64
	sites   []int
	visited []bool
	stack   []int
}

func (w *pxpWalker) grow(root int) int {
	size := 0
	w.stack = append(w.stack[:0], root)
	var u, v, i int
	for len(w.stack) > 0 {
		u = w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.visited[u] {
			continue
		}
		w.visited[u] = true
		size++
		for i = 0; i < w.n; i++ {
			if !pxpFlipAllowed(w.sites[u], i) {
				continue
			}
			v = pxpIndex(w.sites, w.sites[u]^(1<<i))
			if !w.visited[v] && w.s.bond(w.p) {
				w.stack = append(w.stack, v)
			}
		}
	}

	return size
}

func (s *Sampler) newPXPWalker(n int, p float64) (*pxpWalker, error) {
	sites, err := PXPSites(n)
	if err != nil {
		return nil, err
	}

	return &pxpWalker{s: s, n: n, p: p, sites: sites, visited: make([]bool, len(sites))}, nil
}

// PXPClusterSize grows one cluster from the all-zero site of the Fibonacci
// cube and returns its size. With p = 1 the size is F(n+2).
//
// Errors: ErrInvalidArgs.
func (s *Sampler) PXPClusterSize(n int, p float64) (int, error) {
	if err := checkArgs(n, p); err != nil {
		return 0, fmt.Errorf("PXPClusterSize: %w", err)
	}
	w, err := s.newPXPWalker(n, p)
	if err != nil {
		return 0, err
	}

	return w.grow(0), nil
}

// PXPH returns the bond-percolated Fibonacci-cube adjacency on the PXP basis,
// an F(n+2)×F(n+2) CSR indexed by position in PXPSites(n). Draw order and the
// overwrite rule match HypercubeH.
//
// Errors: ErrInvalidArgs.
// Complexity: O(F(n+2)·n·log F(n+2)).
func (s *Sampler) PXPH(n int, p float64) (*matrix.CSR, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("PXPH: %w", err)
	}
	sites, err := PXPSites(n)
	if err != nil {
		return nil, err
	}
	var entries []matrix.Entry
	var row, col, i int
	var keep bool
	for row = range sites {
		for i = 0; i < n; i++ {
			if !pxpFlipAllowed(sites[row], i) {
				continue
			}
			col = pxpIndex(sites, sites[row]^(1<<i))
			keep = s.bond(p)
			if row > col && keep {
				entries = append(entries,
					matrix.Entry{Row: row, Col: col, Val: 1},
					matrix.Entry{Row: col, Col: row, Val: 1})
			}
		}
	}

	return matrix.NewCSR(len(sites), entries)
}

// fibonacci returns F(k) with F(1) = F(2) = 1.
func fibonacci(k int) int {
	a, b := 0, 1
	for ; k > 0; k-- {
		a, b = b, a+b
	}

	return a
}
