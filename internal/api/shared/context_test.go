package shared

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	traced := SetTraceID(ctx)
	traceID := GetTraceID(traced)

	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "trace ID should be a UUID")
	assert.Empty(t, GetTraceID(ctx), "original context must be unchanged")
	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(ctx)), "trace IDs should be unique")
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestClaimsContext(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	assert.False(t, ok)

	_, ok = ClaimsFromContext(WithClaims(context.Background(), nil))
	assert.False(t, ok)

	claims := &auth.Claims{UserID: uuid.New()}
	got, ok := ClaimsFromContext(WithClaims(context.Background(), claims))
	require.True(t, ok)
	assert.Same(t, claims, got)
}

func TestRequestURLContext(t *testing.T) {
	assert.Equal(t, &url.URL{}, RequestURLFromContext(context.Background()))

	u, err := url.Parse("/rooms?page=2&pageSize=5")
	require.NoError(t, err)
	got := RequestURLFromContext(WithRequestURL(context.Background(), u))
	assert.Equal(t, "/rooms", got.Path)
	assert.Equal(t, "5", got.Query().Get("pageSize"))
}
