// Package config resolves the process-wide settings snapshot of the
// road-condition-analyzer backend.
//
// Settings are assembled from the following sources in ascending precedence
// (later sources override earlier ones key by key):
//  1. Built-in defaults
//  2. Optional override file (.env, KEY=value)
//  3. Environment variables
//
// The main entry points are [Load], which resolves a fresh snapshot, and
// [Get], which resolves once per process and returns the same [*Settings]
// to every caller afterwards. [ParseFlags] covers the few command-line
// options of the api and worker binaries.
package config
