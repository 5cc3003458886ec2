package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessTokenType is the "type" claim of every access token.
const AccessTokenType = "access"

// JWTService issues and verifies access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for userID.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies tokenString and extracts its claims. It returns
	// one of the package errors when the token is rejected.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	// UserID is the principal the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// TokenType guards against using a token outside its purpose.
	TokenType string `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
