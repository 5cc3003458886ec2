package auth

import "errors"

// Token validation errors.
var (
	// ErrInvalidToken indicates the token format is invalid or its signature
	// doesn't match.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token's nbf or iat claim is in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType indicates a well-formed token issued for another purpose.
	ErrWrongTokenType = errors.New("wrong authentication token type")

	// ErrMissingSecret indicates the signing secret is absent or too short.
	ErrMissingSecret = errors.New("jwt secret must be at least 32 characters")
)
