package vfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"asset-cache/core/utils"

	"github.com/spf13/afero"
)

// ErrNotMounted is returned when a key references a protocol with no mount.
var ErrNotMounted = errors.New("protocol is not mounted")

// ErrOutsideMount is returned when a key climbs above the root of its mount.
var ErrOutsideMount = fmt.Errorf("%w: path escapes the mount root", ErrNotMounted)

// Resolver maps protocol-qualified keys onto directories of an afero filesystem.
type Resolver struct {
	fs     afero.Fs
	mu     sync.RWMutex
	mounts map[string]string
}

// NewResolver creates a resolver over fs with no mounts.
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{
		fs:     fs,
		mounts: make(map[string]string),
	}
}

// NewFromConfig creates a resolver over fs and mounts every protocol of cfg.
func NewFromConfig(fs afero.Fs, cfg Config) (*Resolver, error) {
	mounts, err := cfg.ParseMounts()
	if err != nil {
		return nil, fmt.Errorf("failed to parse vfs mounts: %w", err)
	}
	r := NewResolver(fs)
	for protocol, dir := range mounts {
		r.Mount(protocol, dir)
	}
	return r, nil
}

// Fs returns the underlying filesystem.
func (r *Resolver) Fs() afero.Fs {
	return r.fs
}

// Mount binds protocol to dir, replacing any previous mount.
func (r *Resolver) Mount(protocol, dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mounts[strings.ToLower(protocol)] = filepath.Clean(dir)
}

// Unmount removes the mount of protocol.
func (r *Resolver) Unmount(protocol string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mounts, strings.ToLower(protocol))
}

// Protocols returns the mounted protocols in sorted order.
func (r *Resolver) Protocols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.mounts))
	for p := range r.mounts {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Root returns the directory mounted for protocol.
func (r *Resolver) Root(protocol string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dir, ok := r.mounts[strings.ToLower(protocol)]
	return dir, ok
}

// HasKnownProtocol reports whether key carries a mounted protocol and stays inside its mount.
func (r *Resolver) HasKnownProtocol(key string) bool {
	_, err := r.ResolveProtocol(key)
	return err == nil
}

// ResolveProtocol converts key into a filesystem path.
func (r *Resolver) ResolveProtocol(key string) (string, error) {
	protocol, rest, ok := utils.SplitKey(utils.NormalizeKey(key))
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotMounted, key)
	}
	root, ok := r.Root(protocol)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotMounted, key)
	}
	if rest == ".." || strings.HasPrefix(rest, "../") {
		return "", fmt.Errorf("%w: %s", ErrOutsideMount, key)
	}
	return filepath.Join(root, filepath.FromSlash(rest)), nil
}

// ConvertToProtocol converts a filesystem path back into a key.
// The mount with the longest matching root wins.
func (r *Resolver) ConvertToProtocol(path string) (string, bool) {
	path = filepath.Clean(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	best, bestRoot := "", ""
	for protocol, root := range r.mounts {
		if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
			continue
		}
		if len(root) > len(bestRoot) || (len(root) == len(bestRoot) && protocol < best) {
			best, bestRoot = protocol, root
		}
	}
	if best == "" {
		return "", false
	}
	rel, err := filepath.Rel(bestRoot, path)
	if err != nil {
		return "", false
	}
	if rel == "." {
		rel = ""
	}
	return best + utils.ProtocolSeparator + filepath.ToSlash(rel), true
}

// Exists reports whether key resolves to an existing regular file.
func (r *Resolver) Exists(key string) bool {
	path, err := r.ResolveProtocol(key)
	if err != nil {
		return false
	}
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// Open opens key for reading.
func (r *Resolver) Open(key string) (io.ReadCloser, error) {
	path, err := r.ResolveProtocol(key)
	if err != nil {
		return nil, err
	}
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", key, err)
	}
	return f, nil
}

// Create truncates or creates key for writing, creating parent directories.
func (r *Resolver) Create(key string) (io.WriteCloser, error) {
	path, err := r.ResolveProtocol(key)
	if err != nil {
		return nil, err
	}
	if err := r.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory for %s: %w", key, err)
	}
	f, err := r.fs.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", key, err)
	}
	return f, nil
}

// Remove deletes the file of key.
func (r *Resolver) Remove(key string) error {
	path, err := r.ResolveProtocol(key)
	if err != nil {
		return err
	}
	if err := r.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys walks the mount of protocol and returns the key of every regular file, sorted.
// A missing mount directory yields no keys.
func (r *Resolver) Keys(protocol string) ([]string, error) {
	root, ok := r.Root(protocol)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotMounted, protocol)
	}
	if exists, err := afero.DirExists(r.fs, root); err != nil || !exists {
		return nil, nil
	}

	var keys []string
	err := afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		// nested mounts own their own files
		if key, ok := r.ConvertToProtocol(path); ok && strings.HasPrefix(key, strings.ToLower(protocol)+utils.ProtocolSeparator) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(keys)
	return keys, nil
}
