// SPDX-License-Identifier: MIT

package dynamics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/percolate/cache"
	"github.com/katalvlaran/percolate/datasets"
	"github.com/katalvlaran/percolate/percolation"
	"github.com/katalvlaran/percolate/quantum"
	"github.com/katalvlaran/percolate/spectral"
	"golang.org/x/sync/errgroup"
)

// Averager computes disorder-averaged observables over cached realizations.
// Safe for concurrent use.
type Averager struct {
	data     *datasets.Generator
	workers  int
	log      *slog.Logger
	spectral []spectral.Option
}

// Option configures an Averager.
type Option func(*Averager)

// WithWorkers bounds the number of realizations processed concurrently.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("dynamics: WithWorkers(n < 1)")
	}
	return func(a *Averager) { a.workers = n }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("dynamics: WithLogger(nil)")
	}
	return func(a *Averager) { a.log = l }
}

// WithSpectralOptions forwards options to spectral.Diagonalize.
func WithSpectralOptions(opts ...spectral.Option) Option {
	return func(a *Averager) { a.spectral = append(a.spectral, opts...) }
}

// NewAverager returns an Averager reading realizations from data and storing
// curves in data's cache.
func NewAverager(data *datasets.Generator, opts ...Option) *Averager {
	a := &Averager{
		data:    data,
		workers: runtime.GOMAXPROCS(0),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// MeanHammingDistance returns the disorder-averaged Hamming distance on the
// time grid of p, loading it from the cache when present.
//
// Implementation:
//   - Stage 1: fetch NR largest-cluster Hamiltonians at p = NCoeff/N.
//   - Stage 2: per realization, diagonalize, locate the start site and
//     evaluate the trajectory; realizations run on a bounded worker pool.
//   - Stage 3: sum trajectories in realization order and divide by NR.
//
// Any failing realization aborts the whole computation and nothing is stored.
//
// Errors: ErrInvalidParams, cache.ErrStorage, cache.ErrGenerator (wrapping the
// spectral or quantum failure), ctx.Err().
func (a *Averager) MeanHammingDistance(ctx context.Context, p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("MeanHammingDistance: %w", err)
	}

	return cache.Fetch(ctx, a.data.Cache(), p.Key(), cache.Float64s{}, func(ctx context.Context) ([]float64, error) {
		return a.average(ctx, p)
	})
}

func (a *Averager) average(ctx context.Context, p Params) ([]float64, error) {
	hs, err := a.data.HamiltoniansLC(ctx, datasets.Params{N: p.N, NR: p.NR, P: p.P()})
	if err != nil {
		return nil, err
	}
	times := p.Times()

	per := make([][]float64, len(hs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(a.workers)
	for i, h := range hs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traj, err := a.trajectory(h, p.N, times)
			if err != nil {
				return fmt.Errorf("realization %d: %w", i, err)
			}
			per[i] = traj
			a.log.Debug("realization done", "index", i, "size", h.Size)
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	res := make([]float64, len(times))
	for _, traj := range per {
		for k, v := range traj {
			res[k] += v
		}
	}
	nr := float64(len(hs))
	for k := range res {
		res[k] /= nr
	}
	a.log.Info("mean Hamming distance computed", "key", p.Key().String(), "realizations", len(hs))

	return res, nil
}

// trajectory returns the Hamming-distance curve of one realization. An
// isolated site never moves, so it contributes zeros.
func (a *Averager) trajectory(h *percolation.Hamiltonian, n int, times []float64) ([]float64, error) {
	if h.Size <= 1 {
		return make([]float64, len(times)), nil
	}
	dense, err := h.H.Dense()
	if err != nil {
		return nil, err
	}
	dec, err := spectral.Diagonalize(dense, a.spectral...)
	if err != nil {
		return nil, err
	}
	start, err := quantum.FindStartSite(dense, n)
	if err != nil {
		return nil, err
	}

	return quantum.Trajectory(dec, start, times)
}
