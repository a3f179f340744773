// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query) protecting the catalog.
//   - rayid: a request id (RayID) for every incoming request, injected into the
//     context locals and the response headers for tracing.
//
// These middleware components are registered globally by the start command.
package middleware
