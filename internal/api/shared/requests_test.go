package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		limit   int64
		want    string
		wantErr error
	}{
		{name: "within limit", body: `{"code":"MC102"}`, limit: 64, want: `{"code":"MC102"}`},
		{name: "no limit", body: strings.Repeat("a", 100), limit: 0, want: strings.Repeat("a", 100)},
		{name: "over limit", body: strings.Repeat("a", 100), limit: 10, wantErr: ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			got, err := ReadBody(w, req, tt.limit)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadBodyWithoutBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/courses", nil)

	got, err := ReadBody(httptest.NewRecorder(), req, 10)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPathParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/institutes/3/courses", nil)
	assert.Nil(t, PathParams(req))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	assert.Equal(t, map[string]string{"id": "3"}, PathParams(req))
}
