package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
)

// Trace adds a trace ID to the request context and a logger carrying it.
// It should be applied early in the middleware chain so every later handler
// logs with the trace ID and error responses echo it.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			log := base.With(slog.String("trace_id", shared.GetTraceID(ctx)))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
