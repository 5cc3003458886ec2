package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/redact"
)

// Recover turns a panic in a handler into a logged 500 with the generic
// error body. http.ErrAbortHandler is re-raised so net/http can abort the
// connection.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			if p == http.ErrAbortHandler {
				// ALLOW-PANIC: net/http handles this sentinel itself
				panic(p)
			}

			logger.FromContextOrDefault(r.Context()).Error("panic recovered",
				slog.String("panic", redact.Value(p)),
				slog.String("panic_type", fmt.Sprintf("%T", p)),
				slog.String("stack", redact.String(string(debug.Stack()))),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			shared.RespondWithError(w, r, http.StatusInternalServerError, shared.InternalErrorMessage)
		}()
		next.ServeHTTP(w, r)
	})
}
