package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// DefaultOverrideFile is the override file looked up in the working
// directory when no other path is configured.
const DefaultOverrideFile = ".env"

// parseOverrideFile reads KEY=value pairs from the UTF-8 file at path.
//
// A missing file is not an error: it yields an empty map. A file that exists
// but cannot be read or parsed is reported as [ErrOverrideFile].
func parseOverrideFile(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOverrideFile, path, err)
	}

	return normalizeVars(vars), nil
}
