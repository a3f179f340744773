package pack

import (
	"context"
	"fmt"
	"io"

	"asset-cache/core/assets"
	"asset-cache/core/utils"
)

// FileSystem is the subset of *vfs.Resolver used by FileStore.
type FileSystem interface {
	Exists(key string) bool
	Open(key string) (io.ReadCloser, error)
	Create(key string) (io.WriteCloser, error)
	Remove(key string) error
}

// FileStore keeps each database in "<protocol>:/assets.pack".
type FileStore struct {
	fs FileSystem
}

// NewFileStore creates a store writing through fs.
func NewFileStore(fs FileSystem) *FileStore {
	return &FileStore{fs: fs}
}

func packKey(protocol string) string {
	return protocol + utils.ProtocolSeparator + FileName
}

// Load reads the database of protocol. A missing file is an empty database.
func (s *FileStore) Load(ctx context.Context, protocol string) ([]assets.Row, error) {
	key := packKey(protocol)
	if !s.fs.Exists(key) {
		return nil, nil
	}
	r, err := s.fs.Open(key)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Decode(r)
}

// Save writes the database of protocol.
func (s *FileStore) Save(ctx context.Context, protocol string, rows []assets.Row) error {
	w, err := s.fs.Create(packKey(protocol))
	if err != nil {
		return err
	}
	if err := Encode(w, rows); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", packKey(protocol), err)
	}
	return nil
}

// Delete removes the database file of protocol.
func (s *FileStore) Delete(ctx context.Context, protocol string) error {
	if !s.fs.Exists(packKey(protocol)) {
		return nil
	}
	return s.fs.Remove(packKey(protocol))
}
