// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the merged variable set using the caarlos0/env
// library. Fields are mapped via the `env` and `envDefault` tags of
// [envSettings]; only a variable missing from environment falls back to its
// default. A variable that is present but empty overrides the default.
//
// Conversion failures are reported as [*ConfigurationParseError].
func parseEnv(cfg *envSettings, environment map[string]string) error {
	var parseErr error
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		parseErr = translateEnvError(err, environment)
	}

	if err := errors.Join(parseErr, applyEmptyValues(cfg, environment)); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// applyEmptyValues assigns the variables that are present with an empty
// value. caarlos0/env substitutes envDefault for them, so they are decoded
// here with the field's own parser: strings become empty, integers fail.
func applyEmptyValues(cfg *envSettings, environment map[string]string) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	var errs []error
	for i := range t.NumField() {
		key := bindingKey(t.Field(i).Name)
		if value, ok := environment[key]; !ok || value != "" {
			continue
		}

		if err := setEmpty(v.Field(i)); err != nil {
			errs = append(errs, &ConfigurationParseError{Key: key, Err: err})
		}
	}

	return errors.Join(errs...)
}

func setEmpty(field reflect.Value) error {
	if u, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return u.UnmarshalText(nil)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString("")
		return nil
	case reflect.Int:
		_, err := strconv.Atoi("")
		return err
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
}

// translateEnvError replaces every env.ParseError inside err with a
// ConfigurationParseError that names the variable instead of the Go field.
func translateEnvError(err error, environment map[string]string) error {
	var aggregate env.AggregateError
	if !errors.As(err, &aggregate) {
		return err
	}

	errs := make([]error, 0, len(aggregate.Errors))
	for _, e := range aggregate.Errors {
		var parseErr env.ParseError
		if !errors.As(e, &parseErr) {
			errs = append(errs, e)
			continue
		}

		key := bindingKey(parseErr.Name)
		errs = append(errs, &ConfigurationParseError{
			Key:   key,
			Value: environment[key],
			Err:   parseErr.Err,
		})
	}

	return errors.Join(errs...)
}

// bindingKey returns the variable name bound to the envSettings field.
func bindingKey(field string) string {
	sf, ok := reflect.TypeFor[envSettings]().FieldByName(field)
	if !ok {
		return field
	}

	key, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
	return key
}

// environToMap converts "KEY=value" pairs (as returned by os.Environ) into
// a normalized variable map.
func environToMap(environ []string) map[string]string {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[key] = value
	}

	return normalizeVars(vars)
}

// normalizeVars upper-cases variable names. Empty values are kept: a
// variable that is set overrides lower precedence sources even when empty.
// When a name occurs in several spellings the upper-case spelling wins.
func normalizeVars(vars map[string]string) map[string]string {
	normalized := make(map[string]string, len(vars))
	for key, value := range vars {
		if upper := strings.ToUpper(key); upper != key {
			normalized[upper] = value
		}
	}
	for key, value := range vars {
		if strings.ToUpper(key) == key {
			normalized[key] = value
		}
	}

	return normalized
}
