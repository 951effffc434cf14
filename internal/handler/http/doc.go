// Package http implements the HTTP application of the API process.
//
// It wires the chi router with panic recovery, request tracing, access
// logging and the CORS policy resolved from settings, and serves the single
// readiness route GET /health.
package http
