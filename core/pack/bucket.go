package pack

import (
	"bytes"
	"context"
	"fmt"

	"asset-cache/core/assets"
	"asset-cache/core/storage"

	"github.com/minio/minio-go/v7"
)

// BucketStore keeps each database as "<prefix><protocol>/assets.pack" in an object storage bucket.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketStore creates a store for bucket. prefix may be empty.
func NewBucketStore(client storage.Client, bucket, prefix string) *BucketStore {
	return &BucketStore{client: client, bucket: bucket, prefix: prefix}
}

func (s *BucketStore) objectName(protocol string) string {
	return s.prefix + protocol + "/" + FileName
}

// EnsureBucket creates the bucket when it does not exist.
func (s *BucketStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Load reads the database of protocol. A missing object is an empty database.
func (s *BucketStore) Load(ctx context.Context, protocol string) ([]assets.Row, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(protocol), minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.objectName(protocol), err)
	}
	defer obj.Close()

	rows, err := Decode(obj)
	if err != nil {
		// minio reports missing objects on first read
		if isNoSuchKey(err) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

// Save uploads the database of protocol.
func (s *BucketStore) Save(ctx context.Context, protocol string, rows []assets.Row) error {
	var buf bytes.Buffer
	if err := Encode(&buf, rows); err != nil {
		return err
	}
	_, err := s.client.PutObject(ctx, s.bucket, s.objectName(protocol), &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "application/toml",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", s.objectName(protocol), err)
	}
	return nil
}

// Delete removes the database object of protocol.
func (s *BucketStore) Delete(ctx context.Context, protocol string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, s.objectName(protocol), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", s.objectName(protocol), err)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	for e := err; e != nil; {
		if minio.ToErrorResponse(e).Code == "NoSuchKey" {
			return true
		}
		u, ok := e.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		e = u.Unwrap()
	}
	return false
}
