// Package middleware provides the request-scoped HTTP middleware of the
// server: trace IDs, request logging and panic recovery.
package middleware
