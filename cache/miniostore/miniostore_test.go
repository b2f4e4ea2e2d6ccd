// SPDX-License-Identifier: MIT
package miniostore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/katalvlaran/percolate/cache"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"
)

func TestMapErr(t *testing.T) {
	t.Parallel()

	for _, code := range []string{"NoSuchKey", "NotFound"} {
		err := mapErr("x.bin", minio.ErrorResponse{Code: code})
		require.ErrorIs(t, err, cache.ErrNotFound, code)
	}
	err := mapErr("x.bin", minio.ErrorResponse{Code: "AccessDenied"})
	require.NotErrorIs(t, err, cache.ErrNotFound)
	require.Error(t, mapErr("x.bin", errors.New("connection reset")))
}

func TestStore_Key(t *testing.T) {
	t.Parallel()

	require.Equal(t, "datasets/a.bin", New(nil, "b", "datasets/").key("a.bin"))
	require.Equal(t, "a.bin", New(nil, "b", "").key("a.bin"))
}

// TestStore_Integration runs only when PERCOLATE_MINIO_ENDPOINT names a MinIO
// instance (credentials minioadmin/minioadmin).
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("PERCOLATE_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("PERCOLATE_MINIO_ENDPOINT not set")
	}
	client, err := NewClient(endpoint, "minioadmin", "minioadmin", false)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}
	ctx := context.Background()
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	store := New(client, "test-percolate", "it/")
	require.NoError(t, store.EnsureBucket(ctx))

	_, err = store.Get(ctx, "absent.bin")
	require.ErrorIs(t, err, cache.ErrNotFound)

	key := cache.NewKey("clusters_hypercube", 4, 2, 0.5)
	c := cache.New(store)
	require.NoError(t, cache.Put(ctx, c, key, cache.Ints{}, []int{3, 1}))
	res, err := cache.Lookup(ctx, c, key, cache.Ints{})
	require.NoError(t, err)
	require.True(t, res.IsHit())
	require.Equal(t, []int{3, 1}, res.Value)
}
