package access

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
)

// Verifier validates bearer tokens. auth.JWTService satisfies it.
type Verifier interface {
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

// Middleware enforces bearer authentication on every request the registry
// does not exempt. Verified claims are attached to the request context.
// When disabled is set every request passes through unchecked.
func (r *Registry) Middleware(verifier Verifier, disabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if disabled || r.IsExempt(req.Method, req.URL.Path) {
				next.ServeHTTP(w, req)
				return
			}

			header := req.Header.Get("Authorization")
			if header == "" {
				shared.RespondWithError(w, req, http.StatusUnauthorized, "Authorization header required")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				shared.RespondWithError(w, req, http.StatusUnauthorized, "Invalid authorization format")
				return
			}

			claims, err := verifier.ValidateToken(req.Context(), token)
			if err != nil {
				message := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) {
					message = "Token expired"
				}
				shared.RespondWithErrorAndLog(w, req, http.StatusUnauthorized, message, err)
				return
			}

			next.ServeHTTP(w, req.WithContext(shared.WithClaims(req.Context(), claims)))
		})
	}
}
