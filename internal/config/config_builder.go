package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// settingsBuilder collects variable sources in ascending precedence and
// resolves them into one [Settings] snapshot. Built-in defaults are the
// lowest layer and live in the envSettings tags.
type settingsBuilder struct {
	sources []map[string]string
	err     error
}

func newSettingsBuilder() *settingsBuilder {
	return &settingsBuilder{
		sources: make([]map[string]string, 0, 2),
	}
}

func (b *settingsBuilder) build() (*Settings, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building settings: %w", b.err)
	}

	merged, err := b.merge()
	if err != nil {
		return nil, err
	}

	cfg := new(envSettings)
	if err := parseEnv(cfg, merged); err != nil {
		return nil, err
	}

	return cfg.snapshot(), nil
}

// merge flattens the sources; a later source overrides the same key of an
// earlier one, also with an empty value. The override file is only read, never loaded into the process
// environment, so godotenv's own precedence rules do not apply.
func (b *settingsBuilder) merge() (map[string]string, error) {
	merged := make(map[string]string)
	for _, src := range b.sources {
		if err := mergo.Merge(&merged, src, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return nil, fmt.Errorf("error merging settings sources: %w", err)
		}
	}

	return merged, nil
}

func (b *settingsBuilder) withOverrideFile(path string) *settingsBuilder {
	if path == "" {
		return b
	}

	vars, err := parseOverrideFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, vars)
	return b
}

func (b *settingsBuilder) withEnv(environ []string) *settingsBuilder {
	b.sources = append(b.sources, environToMap(environ))
	return b
}
