// Package http provides the HTTP REST API implementation.
//
// The HTTP server exposes endpoints for:
//   - Trip plan submission and retrieval
//   - Destination listing
//   - Health checks
//   - Prometheus metrics
package http
