// SPDX-License-Identifier: MIT

package percolation

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/katalvlaran/percolate/matrix"
)

// walker holds the per-realization state of a hypercube traversal.
type walker struct {
	s       *Sampler
	n       int
	p       float64
	visited []bool
	stack   []uint32
	dist    []int32        // BFS only; -1 = not reached
	edges   []matrix.Entry // retained bonds, both directions
	record  bool
}

func newWalker(s *Sampler, n int, p float64) *walker {
	return &walker{s: s, n: n, p: p, visited: make([]bool, 1<<n)}
}

// grow runs a depth-first bond-percolation growth from root and returns the
// cluster size. Bonds are only drawn towards unvisited neighbours; a retained
// bond is recorded in both directions when w.record is set.
//
// Complexity: O(size·n).
func (w *walker) grow(root uint32, sites *roaring.Bitmap) int {
	size := 0
	w.stack = append(w.stack[:0], root)
	var u, v uint32
	var i int
	for len(w.stack) > 0 {
		u = w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
		if w.visited[u] {
			continue
		}
		w.visited[u] = true
		size++
		if sites != nil {
			sites.Add(u)
		}
		for i = 0; i < w.n; i++ {
			v = u ^ (1 << i)
			if w.visited[v] || !w.s.bond(w.p) {
				continue
			}
			w.stack = append(w.stack, v)
			if w.record {
				w.edges = append(w.edges,
					matrix.Entry{Row: int(u), Col: int(v), Val: 1},
					matrix.Entry{Row: int(v), Col: int(u), Val: 1})
			}
		}
	}

	return size
}

// bfs runs a breadth-first bond-percolation growth from root, filling w.dist
// with unit-weight distances, and returns the cluster size. Sites are marked
// visited when dequeued, so bonds towards queued sites are still drawn.
//
// Complexity: O(size·n).
func (w *walker) bfs(root uint32, sites *roaring.Bitmap) int {
	size := 0
	w.dist[root] = 0
	queue := []uint32{root}
	var u, v uint32
	var i int
	for qi := 0; qi < len(queue); qi++ {
		u = queue[qi]
		size++
		w.visited[u] = true
		sites.Add(u)
		for i = 0; i < w.n; i++ {
			v = u ^ (1 << i)
			if w.visited[v] || !w.s.bond(w.p) {
				continue
			}
			if w.dist[v] < 0 || w.dist[u]+1 < w.dist[v] {
				w.dist[v] = w.dist[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return size
}

// ClusterSize grows one cluster from site 0 of the n-cube and returns its size.
//
// Errors: ErrInvalidArgs.
// Complexity: O(2^n) memory, O(size·n) time.
func (s *Sampler) ClusterSize(n int, p float64) (int, error) {
	if err := checkArgs(n, p); err != nil {
		return 0, fmt.Errorf("ClusterSize: %w", err)
	}

	return newWalker(s, n, p).grow(0, nil), nil
}

// HypercubeH returns the bond-percolated adjacency of the whole n-cube.
//
// Every (site, bit) pair draws once in ascending site order; the pair {u, v}
// keeps the draw made from the larger label, which overwrites the earlier one.
// With p = 1 this is the full hypercube; with p = 0 it is empty.
//
// Errors: ErrInvalidArgs.
// Complexity: O(2^n·n).
func (s *Sampler) HypercubeH(n int, p float64) (*matrix.CSR, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("HypercubeH: %w", err)
	}
	m := 1 << n
	var entries []matrix.Entry
	var row, col, i int
	var keep bool
	for row = 0; row < m; row++ {
		for i = 0; i < n; i++ {
			col = row ^ (1 << i)
			keep = s.bond(p)
			if row > col && keep {
				entries = append(entries,
					matrix.Entry{Row: row, Col: col, Val: 1},
					matrix.Entry{Row: col, Col: row, Val: 1})
			}
		}
	}

	return matrix.NewCSR(m, entries)
}

// HypercubeSC grows the cluster containing site 0 and returns it as an M×M
// Hamiltonian.
//
// Errors: ErrInvalidArgs.
func (s *Sampler) HypercubeSC(n int, p float64) (*Hamiltonian, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("HypercubeSC: %w", err)
	}
	w := newWalker(s, n, p)
	w.record = true
	sites := roaring.New()
	size := w.grow(0, sites)
	h, err := matrix.NewCSR(1<<n, w.edges)
	if err != nil {
		return nil, fmt.Errorf("HypercubeSC: %w", err)
	}

	return &Hamiltonian{H: h, Size: size, Root: 0, Sites: sites}, nil
}

// HypercubeLC enumerates the clusters of one realization and returns the
// largest as an M×M Hamiltonian.
//
// Implementation:
//   - Stage 1: for each unvisited site in ascending order, grow its cluster.
//   - Stage 2: keep the strictly larger cluster (first found wins ties).
//   - Stage 3: stop once the largest size is >= the number of unexplored sites.
//
// Errors: ErrInvalidArgs.
// Complexity: O(2^n·n) worst case.
func (s *Sampler) HypercubeLC(n int, p float64) (*Hamiltonian, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("HypercubeLC: %w", err)
	}
	m := 1 << n
	w := newWalker(s, n, p)
	w.record = true

	var (
		best      = &Hamiltonian{Root: -1}
		bestEdges []matrix.Entry
		total     int
	)
	for root := 0; root < m; root++ {
		if w.visited[root] {
			continue
		}
		w.edges = w.edges[:0]
		sites := roaring.New()
		size := w.grow(uint32(root), sites)
		total += size
		if size > best.Size {
			best.Size, best.Root, best.Sites = size, root, sites
			bestEdges, w.edges = w.edges, bestEdges
		}
		if best.Size >= m-total {
			break
		}
	}

	h, err := matrix.NewCSR(m, bestEdges)
	if err != nil {
		return nil, fmt.Errorf("HypercubeLC: %w", err)
	}
	best.H = h

	return best, nil
}

// PathLengths returns the shortest-path length from site 0 to every site of
// its cluster, in ascending site order.
//
// Errors: ErrInvalidArgs.
func (s *Sampler) PathLengths(n int, p float64) ([]int, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("PathLengths: %w", err)
	}
	w := newWalker(s, n, p)
	w.dist = newDist(1 << n)
	sites := roaring.New()
	w.bfs(0, sites)

	return distancesOf(w.dist, sites), nil
}

// PathLengthsLC returns the shortest-path lengths from the root of the largest
// cluster to each of its sites, in ascending site order. Clusters are
// enumerated as in HypercubeLC.
//
// Errors: ErrInvalidArgs.
func (s *Sampler) PathLengthsLC(n int, p float64) ([]int, error) {
	if err := checkArgs(n, p); err != nil {
		return nil, fmt.Errorf("PathLengthsLC: %w", err)
	}
	m := 1 << n
	w := newWalker(s, n, p)
	w.dist = newDist(m)

	var (
		largest   int
		total     int
		bestSites *roaring.Bitmap
	)
	for root := 0; root < m; root++ {
		if w.visited[root] {
			continue
		}
		sites := roaring.New()
		size := w.bfs(uint32(root), sites)
		total += size
		if size > largest {
			largest, bestSites = size, sites
		}
		if largest >= m-total {
			break
		}
	}

	return distancesOf(w.dist, bestSites), nil
}

func newDist(m int) []int32 {
	d := make([]int32, m)
	for i := range d {
		d[i] = -1
	}

	return d
}

// distancesOf collects dist over sites in ascending label order.
func distancesOf(dist []int32, sites *roaring.Bitmap) []int {
	out := make([]int, 0, sites.GetCardinality())
	it := sites.Iterator()
	for it.HasNext() {
		out = append(out, int(dist[it.Next()]))
	}

	return out
}
