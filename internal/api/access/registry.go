// Package access decides which operations may be called without a bearer
// token.
//
// Every operation requires authentication unless its module registers an
// exception for it. Registries from all modules are merged once at startup
// and only read while serving.
package access

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Exception is a (method, pattern) pair that bypasses authentication.
type Exception struct {
	Method  string
	Pattern string
}

// Registry holds the public exceptions of one or more modules. Matching is
// delegated to a chi routing tree, so patterns follow the router's rules.
type Registry struct {
	mux        *chi.Mux
	exceptions []Exception
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{mux: chi.NewMux()}
}

// AddException makes method + pattern public. Parameter segments may be
// written as ":id" or "{id}". It panics on an unknown method or a pattern
// that does not start with "/".
func (r *Registry) AddException(method, pattern string) *Registry {
	e := Exception{
		Method:  strings.ToUpper(method),
		Pattern: routePattern(pattern),
	}
	for _, existing := range r.exceptions {
		if existing == e {
			return r
		}
	}

	// ALLOW-PANIC: exceptions are registered at startup and chi rejects
	// malformed patterns by panicking
	r.mux.MethodFunc(e.Method, e.Pattern, exempt)
	r.exceptions = append(r.exceptions, e)
	return r
}

// Exceptions returns the registered exceptions in insertion order.
func (r *Registry) Exceptions() []Exception {
	if r == nil {
		return nil
	}
	return append([]Exception(nil), r.exceptions...)
}

// IsExempt reports whether a request for method and path skips
// authentication. The path may carry a query string or a trailing slash.
func (r *Registry) IsExempt(method, path string) bool {
	if r == nil || len(r.exceptions) == 0 {
		return false
	}

	path = normalizePath(path)
	if strings.Contains(path, "//") {
		return false
	}
	return r.mux.Match(chi.NewRouteContext(), strings.ToUpper(method), path)
}

// Merge returns a registry holding the union of the given registries. No
// registry takes priority over another.
func Merge(registries ...*Registry) *Registry {
	merged := NewRegistry()
	for _, reg := range registries {
		for _, e := range reg.Exceptions() {
			merged.AddException(e.Method, e.Pattern)
		}
	}
	return merged
}

func exempt(http.ResponseWriter, *http.Request) {}

// normalizePath strips the query string and fragment and removes a trailing
// slash, except for the root path.
func normalizePath(path string) string {
	path, _, _ = strings.Cut(path, "?")
	path, _, _ = strings.Cut(path, "#")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

// routePattern normalizes pattern and rewrites ":name" segments as chi's
// "{name}".
func routePattern(pattern string) string {
	segments := strings.Split(normalizePath(pattern), "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") && len(s) > 1 {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}
