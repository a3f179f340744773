// Package vfs resolves protocol-qualified asset keys onto a filesystem.
//
// A key has the form "<protocol>:/<path>". Each protocol is mounted on a
// directory of an afero filesystem, so the same resolver serves the real OS
// filesystem in production and an in-memory one in tests.
//
// # Usage
//
//	r := vfs.NewResolver(afero.NewOsFs())
//	r.Mount("app", "./app")
//	path, err := r.ResolveProtocol("app:/data/textures/hero.png")
//	key, ok := r.ConvertToProtocol(path)
package vfs
