// Package logger provides a structured logging facility based on Zap.
//
// Every package receives a named child of the root logger (assets, jobs, watcher,
// catalog, integrity) so lines can be filtered by component.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID (request id) from a Fiber context and attaches it to the
// log entry, so that every line emitted while serving a catalog request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("asset cache started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("load failed", zap.Error(err))
package logger
