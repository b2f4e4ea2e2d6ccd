// SPDX-License-Identifier: MIT

package cache

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors of one Cache. With a nil registerer
// the collectors still count but are not exported.
type metrics struct {
	hits        *prometheus.CounterVec
	misses      *prometheus.CounterVec
	generations *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
	blobBytes   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		hits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "percolate_cache_hits_total",
			Help: "Cache lookups served from the store.",
		}, []string{"family"}),
		misses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "percolate_cache_misses_total",
			Help: "Cache lookups that found no entry.",
		}, []string{"family"}),
		generations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "percolate_cache_generations_total",
			Help: "Datasets generated and stored after a miss.",
		}, []string{"family"}),
		storeErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "percolate_cache_store_errors_total",
			Help: "Store, framing or codec failures.",
		}, []string{"family"}),
		blobBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "percolate_cache_blob_bytes",
			Help:    "Size of stored blobs in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 12),
		}, []string{"family"}),
	}
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Generations uint64
	Errors      uint64
}

type counters struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	generations atomic.Uint64
	errors      atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Generations: c.generations.Load(),
		Errors:      c.errors.Load(),
	}
}
