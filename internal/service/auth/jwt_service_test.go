package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string, at time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newHMACService(secret, time.Hour, func() time.Time { return at })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestService(t, testSecret, fixedTime)

	token, err := svc.GenerateToken(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, AccessTokenType, claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name    string
		setup   func(t *testing.T) (*hmacJWTService, string)
		wantErr error
	}{
		{
			name: "valid token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				svc := newTestService(t, testSecret, fixedTime)
				token, err := svc.GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return svc, token
			},
		},
		{
			name: "expired token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				token, err := newTestService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return newTestService(t, testSecret, fixedTime.Add(2*time.Hour)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "issued in the future",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				token, err := newTestService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return newTestService(t, testSecret, fixedTime.Add(-30*time.Minute)), token
			},
			wantErr: ErrTokenNotYetValid,
		},
		{
			name: "within clock skew",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				token, err := newTestService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return newTestService(t, testSecret, fixedTime.Add(time.Hour+time.Minute)), token
			},
		},
		{
			name: "invalid signature",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				token, err := newTestService(t, testSecret, fixedTime).GenerateToken(context.Background(), userID)
				require.NoError(t, err)
				return newTestService(t, wrongSecret, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				return newTestService(t, testSecret, fixedTime), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong token type",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				claims := jwtCustomClaims{
					UserID:    userID,
					TokenType: "refresh",
					RegisteredClaims: jwt.RegisteredClaims{
						IssuedAt:  jwt.NewNumericDate(fixedTime),
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return newTestService(t, testSecret, fixedTime), token
			},
			wantErr: ErrWrongTokenType,
		},
		{
			name: "unexpected signing method",
			setup: func(t *testing.T) (*hmacJWTService, string) {
				claims := jwtCustomClaims{UserID: userID, TokenType: AccessTokenType}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return newTestService(t, testSecret, fixedTime), token
			},
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setup(t)

			claims, err := svc.ValidateToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, userID, claims.UserID)
		})
	}
}
