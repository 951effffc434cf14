// Package server runs the HTTP transport of the API process.
//
// It owns the listener lifecycle: startup, signal handling and graceful
// shutdown.
package server
