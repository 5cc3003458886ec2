package shared

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
)

// ContextKey is the type of the request context keys owned by this package.
type ContextKey string

const (
	// TraceIDKey holds the request's trace ID.
	TraceIDKey ContextKey = "traceID"

	// ClaimsKey holds the authenticated principal's token claims.
	ClaimsKey ContextKey = "claims"

	// RequestURLKey holds the URL of the request being served.
	RequestURLKey ContextKey = "requestURL"
)

// SetTraceID adds a fresh trace ID to the context. The ID correlates log
// lines with error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the trace ID stored in ctx, or "" when there is none.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithClaims attaches the authenticated principal to ctx.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, ClaimsKey, claims)
}

// ClaimsFromContext returns the authenticated principal, if any.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// WithRequestURL attaches the request URL to ctx so business functions can
// build links back to the collection they serve.
func WithRequestURL(ctx context.Context, u *url.URL) context.Context {
	return context.WithValue(ctx, RequestURLKey, u)
}

// RequestURLFromContext returns the URL stored by WithRequestURL, or an
// empty URL.
func RequestURLFromContext(ctx context.Context) *url.URL {
	if u, ok := ctx.Value(RequestURLKey).(*url.URL); ok && u != nil {
		return u
	}
	return &url.URL{}
}
