// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "os"

// Option customizes [Load].
type Option func(*loadOptions)

type loadOptions struct {
	overrideFile string
	environ      func() []string
}

// WithOverrideFile reads the override file from path instead of
// [DefaultOverrideFile].
func WithOverrideFile(path string) Option {
	return func(o *loadOptions) {
		o.overrideFile = path
	}
}

// WithoutOverrideFile disables the override file layer.
func WithoutOverrideFile() Option {
	return WithOverrideFile("")
}

// WithEnviron replaces os.Environ as the source of process variables.
func WithEnviron(environ func() []string) Option {
	return func(o *loadOptions) {
		o.environ = environ
	}
}

// Load resolves a new [Settings] snapshot from the following sources, in
// ascending precedence (a variable set in a later source wins, even when
// empty; only unset variables fall through):
//  1. Built-in defaults
//  2. Override file (.env by default, optional)
//  3. Process environment variables
//
// Load does not cache; use [Get] or a [Cache] to share one snapshot.
//
// It returns an error wrapping [ErrConfigurationParse] when an integer
// setting holds a non-integer value (the empty string included) or
// CORS_ALLOW_ORIGINS names no origin, and [ErrOverrideFile] when the override
// file exists but is unreadable.
func Load(opts ...Option) (*Settings, error) {
	o := loadOptions{
		overrideFile: DefaultOverrideFile,
		environ:      os.Environ,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return newSettingsBuilder().
		withOverrideFile(o.overrideFile).
		withEnv(o.environ()).
		build()
}
