// SPDX-License-Identifier: MIT

// Package miniostore keeps the cache namespace in an S3-compatible bucket
// (MinIO, Ceph, Garage), so several machines can share generated datasets.
//
//	client, err := miniostore.NewClient("localhost:9000", "minioadmin", "minioadmin", false)
//	store := miniostore.New(client, "percolate", "datasets/")
//	c := cache.New(store)
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/katalvlaran/percolate/cache"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store implements cache.Store on a bucket.
type Store struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ cache.Store = (*Store)(nil)

// NewClient connects to endpoint with static credentials.
func NewClient(endpoint, accessKey, secretKey string, secure bool) (*minio.Client, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client %s: %w", endpoint, err)
	}

	return client, nil
}

// New returns a Store writing objects under prefix in bucket.
func New(client *minio.Client, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: prefix}
}

// EnsureBucket creates the bucket if it does not exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}

	return nil
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Get downloads the named blob, or returns an error matching cache.ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key(name), minio.GetObjectOptions{})
	if err != nil {
		return nil, mapErr(name, err)
	}
	defer obj.Close()

	// GetObject is lazy; the first read reports a missing key.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapErr(name, err)
	}

	return data, nil
}

// Put uploads data under name. Object writes are atomic.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, s.key(name), bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return fmt.Errorf("minio put %s: %w", name, err)
	}

	return nil
}

// mapErr translates missing-object responses to cache.ErrNotFound.
func mapErr(name string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return fmt.Errorf("%s: %w", name, cache.ErrNotFound)
	}

	return fmt.Errorf("minio get %s: %w", name, err)
}
