// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines
// the listen port, the API key protecting the catalog and the graceful
// shutdown bound.
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start:
//
//	app.Listen(cfg.Server.Address())
package server
