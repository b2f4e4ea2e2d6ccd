// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// Cache is the generate-or-load front of a Store. It is safe for concurrent use.
type Cache struct {
	store       Store
	log         *slog.Logger
	compression Compression
	metrics     *metrics
	counters    counters
	group       singleflight.Group
}

// Option configures a Cache.
type Option func(*cacheOptions)

type cacheOptions struct {
	logger      *slog.Logger
	registerer  prometheus.Registerer
	compression Compression
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *cacheOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRegisterer exports the cache metrics on reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *cacheOptions) { o.registerer = reg }
}

// WithCompression selects the blob compression for new entries. Reads accept
// every supported compression regardless.
func WithCompression(c Compression) Option {
	return func(o *cacheOptions) { o.compression = c }
}

// New returns a Cache over store.
func New(store Store, opts ...Option) *Cache {
	o := cacheOptions{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		compression: CompressionZstd,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Cache{
		store:       store,
		log:         o.logger,
		compression: o.compression,
		metrics:     newMetrics(o.registerer),
	}
}

// Stats returns a snapshot of hit, miss, generation and error counts.
func (c *Cache) Stats() Stats { return c.counters.snapshot() }

// Outcome tells which branch a lookup took.
type Outcome int

const (
	// Miss means no entry exists under the key.
	Miss Outcome = iota
	// Hit means the entry was read and decoded.
	Hit
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o == Hit {
		return "hit"
	}

	return "miss"
}

// Result is the two-variant outcome of Lookup. Value is only meaningful on Hit.
type Result[T any] struct {
	Outcome Outcome
	Value   T
}

// IsHit reports whether r carries a stored value.
func (r Result[T]) IsHit() bool { return r.Outcome == Hit }

func (c *Cache) storageErr(family string, err error) error {
	c.counters.errors.Add(1)
	c.metrics.storeErrors.WithLabelValues(family).Inc()

	return fmt.Errorf("%w: %w", ErrStorage, err)
}

// Lookup reads key without generating anything.
//
// Errors:
//   - ErrInvalidKey.
//   - ErrStorage for store failures other than absence, and for corrupt
//     entries (also matching ErrCorrupt).
func Lookup[T any](ctx context.Context, c *Cache, key Key, codec Codec[T]) (Result[T], error) {
	var zero Result[T]
	if err := key.validate(); err != nil {
		return zero, err
	}
	name := key.Name()
	blob, err := c.store.Get(ctx, name)
	if errors.Is(err, ErrNotFound) {
		c.counters.misses.Add(1)
		c.metrics.misses.WithLabelValues(key.Family()).Inc()
		return zero, nil
	}
	if err != nil {
		return zero, c.storageErr(key.Family(), fmt.Errorf("get %s: %w", name, err))
	}

	payload, err := decodeBlob(codec.Kind(), blob)
	if err != nil {
		return zero, c.storageErr(key.Family(), fmt.Errorf("%s: %w", name, err))
	}
	v, err := codec.Decode(payload)
	if err != nil {
		return zero, c.storageErr(key.Family(), fmt.Errorf("%s: decode %s: %v: %w", name, codec.Kind(), err, ErrCorrupt))
	}

	c.counters.hits.Add(1)
	c.metrics.hits.WithLabelValues(key.Family()).Inc()
	c.log.Debug("cache hit", "key", key.String(), "family", key.Family(), "bytes", len(blob))

	return Result[T]{Outcome: Hit, Value: v}, nil
}

// Put encodes v and stores it under key, replacing any existing entry.
//
// Errors: ErrInvalidKey, ErrStorage.
func Put[T any](ctx context.Context, c *Cache, key Key, codec Codec[T], v T) error {
	if err := key.validate(); err != nil {
		return err
	}
	payload, err := codec.Encode(v)
	if err != nil {
		return c.storageErr(key.Family(), fmt.Errorf("encode %s: %w", codec.Kind(), err))
	}
	blob, err := encodeBlob(codec.Kind(), payload, c.compression)
	if err != nil {
		return c.storageErr(key.Family(), err)
	}
	if err = c.store.Put(ctx, key.Name(), blob); err != nil {
		return c.storageErr(key.Family(), fmt.Errorf("put %s: %w", key.Name(), err))
	}
	c.metrics.blobBytes.WithLabelValues(key.Family()).Observe(float64(len(blob)))
	c.log.Info("cache entry stored", "key", key.String(), "family", key.Family(), "bytes", len(blob), "compression", c.compression.String())

	return nil
}

// Fetch returns the value stored under key, generating and storing it on a miss.
//
// Implementation:
//   - Stage 1: Lookup; a Hit is returned unmodified.
//   - Stage 2: on Miss, run gen; on error return it wrapped with ErrGenerator
//     and write nothing.
//   - Stage 3: Put the generated value and return it.
//
// Concurrent Fetch calls for the same key share one execution, and the value
// they receive is shared; treat it as read-only.
//
// Errors: ErrInvalidKey, ErrStorage, ErrGenerator, ctx.Err().
func Fetch[T any](ctx context.Context, c *Cache, key Key, codec Codec[T], gen func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := key.validate(); err != nil {
		return zero, err
	}
	v, err, _ := c.group.Do(key.Name(), func() (any, error) {
		res, err := Lookup(ctx, c, key, codec)
		if err != nil {
			return nil, err
		}
		if res.IsHit() {
			return res.Value, nil
		}

		c.log.Info("cache miss, generating", "key", key.String(), "family", key.Family())
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		val, err := gen(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", key.String(), ErrGenerator, err)
		}
		c.counters.generations.Add(1)
		c.metrics.generations.WithLabelValues(key.Family()).Inc()
		if err = Put(ctx, c, key, codec, val); err != nil {
			return nil, err
		}

		return val, nil
	})
	if err != nil {
		return zero, err
	}

	return v.(T), nil
}
