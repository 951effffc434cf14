package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationParse marks a value that cannot be converted to the
	// declared type of its setting (for example UPLOAD_CHUNK_SIZE_MB=abc).
	// Match it with errors.Is; use errors.As with [*ConfigurationParseError]
	// to get the offending variable.
	ErrConfigurationParse = errors.New("configuration parse error")
	// ErrOverrideFile indicates an override file that exists but cannot be
	// read or parsed.
	ErrOverrideFile = errors.New("invalid override file")
	// ErrNoOrigins indicates a CORS_ALLOW_ORIGINS value that names no origin.
	ErrNoOrigins = errors.New("no CORS origin given")
)

// ConfigurationParseError describes a single setting whose source value could
// not be parsed. Settings resolution fails as a whole when one occurs; no
// default is substituted.
type ConfigurationParseError struct {
	// Key is the external variable name, e.g. "UPLOAD_CHUNK_SIZE_MB".
	Key string
	// Value is the raw value that failed to parse.
	Value string
	// Err is the underlying conversion error.
	Err error
}

func (e *ConfigurationParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %s=%q: %v", ErrConfigurationParse, e.Key, e.Value, e.Err)
}

func (e *ConfigurationParseError) Unwrap() []error {
	return []error{ErrConfigurationParse, e.Err}
}
