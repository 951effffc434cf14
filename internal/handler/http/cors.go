// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"slices"
	"strings"

	"github.com/MKhiriev/road-condition-analyzer/internal/config"
	"github.com/go-chi/cors"
)

// corsMaxAge is how long, in seconds, browsers may cache a preflight answer.
const corsMaxAge = 3600

// corsMethods lists every standard request method. Any other method is
// allowed as well, see withCORS.
var corsMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// withCORS returns the CORS middleware for the resolved origin policy. Every
// request method is allowed: go-chi/cors only matches a fixed list, so a
// request for a method outside corsMethods is served by a policy that also
// lists that method.
func (h *Handler) withCORS() func(http.Handler) http.Handler {
	opts := corsOptions(h.origins)
	standard := cors.New(opts)

	return func(next http.Handler) http.Handler {
		handler := standard.Handler(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method := corsRequestMethod(r)
			if slices.Contains(corsMethods, method) {
				handler.ServeHTTP(w, r)
				return
			}

			extended := opts
			extended.AllowedMethods = append(slices.Clone(corsMethods), method)
			cors.New(extended).Handler(next).ServeHTTP(w, r)
		})
	}
}

// corsRequestMethod returns the method a CORS check applies to: the requested
// one for a preflight, the request's own otherwise.
func corsRequestMethod(r *http.Request) string {
	if r.Method == http.MethodOptions {
		if requested := r.Header.Get("Access-Control-Request-Method"); requested != "" {
			return strings.ToUpper(requested)
		}
	}

	return strings.ToUpper(r.Method)
}

// corsOptions maps the origin policy onto go-chi/cors options. Credentials are
// allowed, so a wildcard policy is expressed as an origin func that accepts
// every origin: the middleware then echoes the caller's origin instead of
// sending "*", which browsers reject on credentialed requests.
func corsOptions(origins config.Origins) cors.Options {
	opts := cors.Options{
		AllowedMethods:   corsMethods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}

	allowed := origins.Allowed()
	if origins.Kind() == config.OriginsWildcard || slices.Contains(allowed, config.WildcardOrigin) {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
		return opts
	}

	if len(allowed) == 0 {
		// go-chi/cors treats an empty list as "allow all".
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
		return opts
	}

	opts.AllowedOrigins = allowed
	return opts
}
