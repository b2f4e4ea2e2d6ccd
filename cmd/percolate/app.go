// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/katalvlaran/percolate/cache"
	"github.com/katalvlaran/percolate/cache/badgerstore"
	"github.com/katalvlaran/percolate/cache/miniostore"
	"github.com/katalvlaran/percolate/config"
	"github.com/katalvlaran/percolate/datasets"
	"github.com/katalvlaran/percolate/dynamics"
	"github.com/katalvlaran/percolate/spectral"
)

// app holds the components wired from one Config.
type app struct {
	log      *slog.Logger
	cache    *cache.Cache
	data     *datasets.Generator
	averager *dynamics.Averager
	close    func() error
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger) (*app, error) {
	store, closeFn, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	comp, err := cache.ParseCompression(cfg.Compression)
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	c := cache.New(store, cache.WithLogger(log), cache.WithCompression(comp))
	data := datasets.New(c,
		datasets.WithSeed(cfg.Seed),
		datasets.WithWorkers(cfg.Workers),
		datasets.WithLogger(log))
	averager := dynamics.NewAverager(data,
		dynamics.WithWorkers(cfg.Workers),
		dynamics.WithLogger(log),
		dynamics.WithSpectralOptions(spectral.WithTolerance(cfg.EigenTol)))

	return &app{log: log, cache: c, data: data, averager: averager, close: closeFn}, nil
}

// Close logs the cache activity and releases the store.
func (a *app) Close() error {
	s := a.cache.Stats()
	a.log.Debug("cache stats", "hits", s.Hits, "misses", s.Misses, "generations", s.Generations, "errors", s.Errors)

	return a.close()
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (cache.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Backend {
	case config.BackendLocal:
		s, err := cache.NewLocalStore(cfg.DataDir)
		return s, noop, err
	case config.BackendBadger:
		bc := badgerstore.DefaultConfig(filepath.Join(cfg.DataDir, "badger"))
		bc.Logger = log
		s, err := badgerstore.Open(bc)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendMinIO:
		client, err := miniostore.NewClient(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Secure)
		if err != nil {
			return nil, nil, err
		}
		s := miniostore.New(client, cfg.MinIO.Bucket, cfg.MinIO.Prefix)
		if err = s.EnsureBucket(ctx); err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case config.BackendMemory:
		return cache.NewMemoryStore(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
