// Package loader provides the plugin-like feature loading system.
//
// A feature is an HTTP surface over the asset manager. Features are registered
// once at boot and mounted in registration order.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager struct holds the registry of available features. It handles:
//   - Registration of features via Register()
//   - Initialization and loading of enabled features via LoadAll()
//
// The start command registers the catalog and integrity features; each can be
// switched off through its Enabled config flag without touching the others.
package loader
