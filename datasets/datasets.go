// SPDX-License-Identifier: MIT

package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/go-playground/validator/v10"
	"github.com/katalvlaran/percolate/cache"
	"github.com/katalvlaran/percolate/matrix"
	"github.com/katalvlaran/percolate/percolation"
	"golang.org/x/sync/errgroup"
)

// Family tags, used verbatim as the key prefix.
const (
	ClustersHypercube = "clusters_hypercube"
	ClustersPXP       = "clusters_PXP"
	HSCHypercube      = "H_SC_hypercube"
	HLCHypercube      = "H_LC_hypercube"
	PathsHypercube    = "paths_hypercube"
	PathsHypercubeLC  = "paths_hypercube_LC"
	HHypercube        = "H_hypercube"
	HPXP              = "H_PXP"
)

// Families lists every family in a stable order.
func Families() []string {
	return []string{
		ClustersHypercube, ClustersPXP,
		HSCHypercube, HLCHypercube, HHypercube, HPXP,
		PathsHypercube, PathsHypercubeLC,
	}
}

// ErrUnknownFamily is returned by Ensure for an unrecognized family tag.
var ErrUnknownFamily = errors.New("datasets: unknown family")

// Params identifies one dataset within a family.
type Params struct {
	N  int     `validate:"min=1"`
	NR int     `validate:"min=1"`
	P  float64 `validate:"gte=0,lte=1"`
}

var validate = validator.New()

// Validate reports parameters outside their domains as percolation.ErrInvalidArgs.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", percolation.ErrInvalidArgs, err)
	}
	if p.N > percolation.MaxN {
		return fmt.Errorf("%w: N=%d above %d", percolation.ErrInvalidArgs, p.N, percolation.MaxN)
	}

	return nil
}

// Key returns the cache key of the dataset p in family.
func (p Params) Key(family string) cache.Key {
	return cache.NewKey(family, p.N, p.NR, p.P)
}

// Generator produces datasets through a Cache.
type Generator struct {
	cache   *cache.Cache
	source  percolation.Source
	workers int
	log     *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the base RNG seed (0 selects the default seed).
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.source = percolation.NewSource(seed) }
}

// WithWorkers bounds the number of realizations generated concurrently.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("datasets: WithWorkers(n < 1)")
	}
	return func(g *Generator) { g.workers = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("datasets: WithLogger(nil)")
	}
	return func(g *Generator) { g.log = l }
}

// New returns a Generator backed by c. Defaults: seed 0, GOMAXPROCS workers,
// discard logger.
func New(c *cache.Cache, opts ...Option) *Generator {
	g := &Generator{
		cache:   c,
		source:  percolation.NewSource(0),
		workers: runtime.GOMAXPROCS(0),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Cache returns the underlying cache.
func (g *Generator) Cache() *cache.Cache { return g.cache }

// fetch is the single generate-or-load path shared by every family: NR
// realizations, realization i drawn by one(Stream(family, i)).
func fetch[T any](
	ctx context.Context,
	g *Generator,
	family string,
	p Params,
	codec cache.Codec[[]T],
	one func(s *percolation.Sampler) (T, error),
) ([]T, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", family, err)
	}

	return cache.Fetch(ctx, g.cache, p.Key(family), codec, func(ctx context.Context) ([]T, error) {
		g.log.Info("generating dataset", "family", family, "n", p.N, "nr", p.NR, "p", p.P)
		out := make([]T, p.NR)
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(g.workers)
		for i := range out {
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := one(g.source.Stream(family, i))
				if err != nil {
					return fmt.Errorf("realization %d: %w", i, err)
				}
				out[i] = v
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		return out, nil
	})
}

// ClusterSizes returns NR sizes of the cluster containing the origin of the
// bond-percolated N-cube.
func (g *Generator) ClusterSizes(ctx context.Context, p Params) ([]int, error) {
	return fetch(ctx, g, ClustersHypercube, p, cache.Ints{}, func(s *percolation.Sampler) (int, error) {
		return s.ClusterSize(p.N, p.P)
	})
}

// PXPClusterSizes returns NR sizes of the cluster containing the all-zero site
// of the bond-percolated Fibonacci cube.
func (g *Generator) PXPClusterSizes(ctx context.Context, p Params) ([]int, error) {
	return fetch(ctx, g, ClustersPXP, p, cache.Ints{}, func(s *percolation.Sampler) (int, error) {
		return s.PXPClusterSize(p.N, p.P)
	})
}

// HamiltoniansSC returns NR origin-cluster Hamiltonians.
func (g *Generator) HamiltoniansSC(ctx context.Context, p Params) ([]*percolation.Hamiltonian, error) {
	return fetch(ctx, g, HSCHypercube, p, Hamiltonians{}, func(s *percolation.Sampler) (*percolation.Hamiltonian, error) {
		return s.HypercubeSC(p.N, p.P)
	})
}

// HamiltoniansLC returns NR largest-cluster Hamiltonians.
func (g *Generator) HamiltoniansLC(ctx context.Context, p Params) ([]*percolation.Hamiltonian, error) {
	return fetch(ctx, g, HLCHypercube, p, Hamiltonians{}, func(s *percolation.Sampler) (*percolation.Hamiltonian, error) {
		return s.HypercubeLC(p.N, p.P)
	})
}

// HamiltoniansFull returns NR percolated adjacencies of the whole N-cube. Each
// realization spans all 2^N sites with root 0, isolated sites included.
func (g *Generator) HamiltoniansFull(ctx context.Context, p Params) ([]*percolation.Hamiltonian, error) {
	return fetch(ctx, g, HHypercube, p, Hamiltonians{}, func(s *percolation.Sampler) (*percolation.Hamiltonian, error) {
		h, err := s.HypercubeH(p.N, p.P)
		if err != nil {
			return nil, err
		}
		return whole(h), nil
	})
}

// PXPHamiltonians returns NR percolated Fibonacci-cube adjacencies indexed by
// position in percolation.PXPSites(N).
func (g *Generator) PXPHamiltonians(ctx context.Context, p Params) ([]*percolation.Hamiltonian, error) {
	return fetch(ctx, g, HPXP, p, Hamiltonians{}, func(s *percolation.Sampler) (*percolation.Hamiltonian, error) {
		h, err := s.PXPH(p.N, p.P)
		if err != nil {
			return nil, err
		}
		return whole(h), nil
	})
}

// whole wraps a full-graph adjacency as a Hamiltonian covering every index.
func whole(h *matrix.CSR) *percolation.Hamiltonian {
	sites := roaring.New()
	sites.AddRange(0, uint64(h.Dim()))

	return &percolation.Hamiltonian{H: h, Size: h.Dim(), Root: 0, Sites: sites}
}

// PathLengths returns, per realization, the path lengths from the origin to
// every site of its cluster.
func (g *Generator) PathLengths(ctx context.Context, p Params) ([][]int, error) {
	return fetch(ctx, g, PathsHypercube, p, cache.IntSlices{}, func(s *percolation.Sampler) ([]int, error) {
		return s.PathLengths(p.N, p.P)
	})
}

// PathLengthsLC returns, per realization, the path lengths from the root of
// the largest cluster to each of its sites.
func (g *Generator) PathLengthsLC(ctx context.Context, p Params) ([][]int, error) {
	return fetch(ctx, g, PathsHypercubeLC, p, cache.IntSlices{}, func(s *percolation.Sampler) ([]int, error) {
		return s.PathLengthsLC(p.N, p.P)
	})
}

// Ensure makes sure the dataset exists in the cache, generating it if needed,
// and returns the number of realizations it holds.
func (g *Generator) Ensure(ctx context.Context, family string, p Params) (int, error) {
	var n int
	var err error
	switch family {
	case ClustersHypercube:
		var v []int
		v, err = g.ClusterSizes(ctx, p)
		n = len(v)
	case ClustersPXP:
		var v []int
		v, err = g.PXPClusterSizes(ctx, p)
		n = len(v)
	case HSCHypercube:
		var v []*percolation.Hamiltonian
		v, err = g.HamiltoniansSC(ctx, p)
		n = len(v)
	case HLCHypercube:
		var v []*percolation.Hamiltonian
		v, err = g.HamiltoniansLC(ctx, p)
		n = len(v)
	case HHypercube:
		var v []*percolation.Hamiltonian
		v, err = g.HamiltoniansFull(ctx, p)
		n = len(v)
	case HPXP:
		var v []*percolation.Hamiltonian
		v, err = g.PXPHamiltonians(ctx, p)
		n = len(v)
	case PathsHypercube:
		var v [][]int
		v, err = g.PathLengths(ctx, p)
		n = len(v)
	case PathsHypercubeLC:
		var v [][]int
		v, err = g.PathLengthsLC(ctx, p)
		n = len(v)
	default:
		return 0, fmt.Errorf("%q: %w", family, ErrUnknownFamily)
	}

	return n, err
}
