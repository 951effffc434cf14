// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"slices"
	"strings"
)

// WildcardOrigin is the CORS token that allows every origin.
const WildcardOrigin = "*"

// OriginsKind tells which variant an [Origins] value holds.
type OriginsKind int

const (
	// OriginsWildcard allows any origin.
	OriginsWildcard OriginsKind = iota
	// OriginsList allows only the listed origins.
	OriginsList
)

// Origins is the decoded form of CORS_ALLOW_ORIGINS.
//
// The raw value is decoded exactly once, when settings are resolved:
//   - a JSON array of strings (e.g. `["https://a.example"]`) is taken as an
//     already structured list and kept unchanged;
//   - the literal "*" selects [OriginsWildcard];
//   - anything else is a comma separated list: every piece is trimmed and
//     empty pieces are dropped, order and duplicates are kept.
//
// A source that ends up with no origin at all is rejected with
// [ErrNoOrigins], so resolved settings never carry an empty list. An empty
// list built with [ListOrigins] allows no origin.
//
// The zero value is the wildcard.
type Origins struct {
	kind OriginsKind
	list []string
}

// WildcardOrigins returns the "allow every origin" variant.
func WildcardOrigins() Origins {
	return Origins{kind: OriginsWildcard}
}

// ListOrigins returns an already structured origin list. The values are
// copied and kept as given: no trimming, no deduplication.
func ListOrigins(origins ...string) Origins {
	return Origins{kind: OriginsList, list: slices.Clone(origins)}
}

// ParseOrigins decodes a raw CORS_ALLOW_ORIGINS value. It fails with
// [ErrNoOrigins] when the value holds no origin, e.g. "", " , " or "[]".
func ParseOrigins(raw string) (Origins, error) {
	if raw == WildcardOrigin {
		return WildcardOrigins(), nil
	}

	origins, ok := parseStructuredOrigins(raw)
	if !ok {
		origins = splitOrigins(raw)
	}

	if len(origins) == 0 {
		return Origins{}, ErrNoOrigins
	}

	return ListOrigins(origins...), nil
}

func splitOrigins(raw string) []string {
	pieces := strings.Split(raw, ",")
	origins := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if origin := strings.TrimSpace(piece); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}

// parseStructuredOrigins reports whether raw is a JSON array of strings.
// Text that only looks like an array but fails to decode is handled by the
// comma splitting rules instead.
func parseStructuredOrigins(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}

	var origins []string
	if err := json.Unmarshal([]byte(trimmed), &origins); err != nil {
		return nil, false
	}

	return origins, true
}

// UnmarshalText implements [encoding.TextUnmarshaler] so caarlos0/env can
// decode the field directly.
func (o *Origins) UnmarshalText(text []byte) error {
	origins, err := ParseOrigins(string(text))
	if err != nil {
		return err
	}

	*o = origins
	return nil
}

// Kind returns the variant held by o.
func (o Origins) Kind() OriginsKind {
	return o.kind
}

// Allowed returns the origin list handed to the CORS policy. The returned
// slice is a copy.
func (o Origins) Allowed() []string {
	if o.kind == OriginsWildcard {
		return []string{WildcardOrigin}
	}

	return slices.Clone(o.list)
}

// String renders o back into the comma separated form.
func (o Origins) String() string {
	return strings.Join(o.Allowed(), ",")
}
