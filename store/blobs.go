package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"namecheck/common"
)

// BlobStore persists opaque model blobs by key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

// LocalBlobStore keeps blobs as files under a directory.
type LocalBlobStore struct {
	dir string
}

// NewLocalBlobStore creates the directory if needed and returns a store.
func NewLocalBlobStore(dir string) (*LocalBlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &LocalBlobStore{dir: dir}, nil
}

// Put writes the blob through a temp file and rename so readers never see a
// partial write.
func (l *LocalBlobStore) Put(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(l.dir, key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publish blob: %w", err)
	}
	return nil
}

// Get reads a blob by key.
func (l *LocalBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.dir, key))
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	return data, nil
}

// S3BlobStore keeps blobs in an S3 bucket under a key prefix.
type S3BlobStore struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewS3BlobStore wraps an S3 client as a blob store.
func NewS3BlobStore(client *common.S3, bucket, prefix string) *S3BlobStore {
	return &S3BlobStore{s3: client, bucket: bucket, prefix: prefix}
}

// Put uploads the blob to S3.
func (s *S3BlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.s3.Put(ctx, s.bucket, s.objectKey(key), bytes.NewReader(data), "application/json"); err != nil {
		return fmt.Errorf("upload blob: %w", err)
	}
	return nil
}

// Get downloads the blob from S3.
func (s *S3BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.s3.Get(ctx, s.bucket, s.objectKey(key))
	if err != nil {
		return nil, fmt.Errorf("download blob: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read blob body: %w", err)
	}
	return data, nil
}

func (s *S3BlobStore) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimSuffix(s.prefix, "/") + "/" + key
}
