// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small interface so the bucket backend
// of the asset database store can be exercised against core/storage/mocks in
// tests and against AWS S3 or a self-hosted MinIO in production.
//
// # Operations
//
//   - BucketExists / MakeBucket: ensure the target bucket.
//   - PutObject: upload an assets.pack document.
//   - GetObject: stream an assets.pack document back.
//   - RemoveObject: drop the database of a protocol.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	store := pack.NewBucketStore(client, cfg.Storage.Bucket, cfg.Pack.Prefix)
package storage
