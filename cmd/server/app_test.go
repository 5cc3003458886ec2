package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

const testSecret = "test-secret-that-is-at-least-32-characters"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			MaxBodyBytes:           1 << 10,
			ShutdownTimeoutSeconds: 1,
		},
		Database: testdb.Config(),
		Auth: config.AuthConfig{
			JWTSecret:            testSecret,
			TokenLifetimeMinutes: 60,
		},
		Docs: config.DocsConfig{Title: "POMI API", Version: "test"},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) (*application, http.Handler, *logger.TestLogBuffer) {
	t.Helper()
	log, buf := logger.NewTestLogger()
	app, err := newApplication(cfg, log, testdb.Open(t))
	require.NoError(t, err)
	router, err := app.setupRouter()
	require.NoError(t, err)
	return app, router, buf
}

func serveRequest(router http.Handler, method, target, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouterAccess(t *testing.T) {
	app, router, _ := newTestApp(t, testConfig())
	token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	room := `{"code":"CB01","building":"CB","capacity":80}`

	tests := []struct {
		name   string
		method string
		target string
		token  string
		body   string
		want   int
	}{
		{name: "health", method: http.MethodGet, target: "/health", want: http.StatusOK},
		{name: "openapi document", method: http.MethodGet, target: "/openapi.json", want: http.StatusOK},
		{name: "docs redirect", method: http.MethodGet, target: "/docs", want: http.StatusMovedPermanently},
		{name: "docs page", method: http.MethodGet, target: "/docs/index.html", want: http.StatusOK},
		{name: "docs asset", method: http.MethodGet, target: "/docs/swagger-ui.css", want: http.StatusOK},
		{name: "public list", method: http.MethodGet, target: "/rooms", want: http.StatusOK},
		{name: "public item", method: http.MethodGet, target: "/rooms/1", want: http.StatusNotFound},
		{name: "write without token", method: http.MethodPost, target: "/rooms", body: room, want: http.StatusUnauthorized},
		{name: "write with bad token", method: http.MethodPost, target: "/rooms", token: "nope", body: room, want: http.StatusUnauthorized},
		{name: "write with token", method: http.MethodPost, target: "/rooms", token: token, body: room, want: http.StatusCreated},
		{name: "delete without token", method: http.MethodDelete, target: "/rooms/1", want: http.StatusUnauthorized},
		{name: "unknown route without token", method: http.MethodPost, target: "/nowhere", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveRequest(router, tt.method, tt.target, tt.token, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouterUnauthorizedBody(t *testing.T) {
	_, router, _ := newTestApp(t, testConfig())

	w := serveRequest(router, http.MethodPost, "/rooms", "", `{}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Authorization header required", body.Error)
	_, err := uuid.Parse(body.TraceID)
	assert.NoError(t, err, "responses carry the request trace ID")
}

func TestRouterAuthDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{Disabled: true, TokenLifetimeMinutes: 60}
	app, router, buf := newTestApp(t, cfg)
	assert.Nil(t, app.jwtService)
	assert.Contains(t, buf.String(), "authentication is disabled")

	w := serveRequest(router, http.MethodPost, "/programs", "", `{"code":"42","name":"Computação"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestRouterBodyLimit(t *testing.T) {
	app, router, _ := newTestApp(t, testConfig())
	token, err := app.jwtService.GenerateToken(context.Background(), uuid.New())
	require.NoError(t, err)

	big := `{"code":"42","name":"` + strings.Repeat("x", 2<<10) + `"}`
	w := serveRequest(router, http.MethodPost, "/programs", token, big)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "TOO_BIG")
}

func TestRouterOpenAPIDocument(t *testing.T) {
	_, router, _ := newTestApp(t, testConfig())

	w := serveRequest(router, http.MethodGet, "/openapi.json", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Info    struct{ Title string }    `json:"info"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.True(t, strings.HasPrefix(doc.OpenAPI, "3.1"))
	assert.Equal(t, "POMI API", doc.Info.Title)
	for _, path := range []string{"/institutes", "/courses/{id}", "/class-schedules", "/curricula/{id}"} {
		assert.Contains(t, doc.Paths, path)
	}
	assert.NotContains(t, doc.Paths, "/health")
}

func TestRequestsAreLoggedWithTraceID(t *testing.T) {
	_, router, buf := newTestApp(t, testConfig())

	w := serveRequest(router, http.MethodGet, "/rooms/999", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	entries, err := buf.Entries()
	require.NoError(t, err)
	var completed map[string]any
	for _, e := range entries {
		if e["msg"] == "request completed" {
			completed = e
		}
	}
	require.NotNil(t, completed)
	assert.EqualValues(t, http.StatusNotFound, completed["status"])
	assert.NotEmpty(t, completed["trace_id"])
}

func TestServeStopsOnCancel(t *testing.T) {
	app, router, buf := newTestApp(t, testConfig())
	server := &http.Server{Addr: "127.0.0.1:0", Handler: router}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.serve(ctx, server) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Contains(t, buf.String(), "server shutdown completed")
}

func TestWriteToken(t *testing.T) {
	cfg := testConfig().Auth
	userID := uuid.New()

	var out bytes.Buffer
	require.NoError(t, writeToken(context.Background(), &out, cfg, userID))

	jwtService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	claims, err := jwtService.ValidateToken(context.Background(), strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestWriteTokenWithoutSecret(t *testing.T) {
	err := writeToken(context.Background(), &bytes.Buffer{}, config.AuthConfig{TokenLifetimeMinutes: 60}, uuid.New())
	assert.ErrorIs(t, err, auth.ErrMissingSecret)
}

func TestRunTokenRejectsInvalidUserID(t *testing.T) {
	err := runToken(context.Background(), &bytes.Buffer{}, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --user-id")
}

func TestCommandTree(t *testing.T) {
	cmd := newCommand()
	assert.Equal(t, "pomi", cmd.Name)
	assert.NotNil(t, cmd.Action, "serve runs when no subcommand is given")

	names := make(map[string][]string)
	for _, sub := range cmd.Commands {
		var children []string
		for _, c := range sub.Commands {
			children = append(children, c.Name)
		}
		names[sub.Name] = children
	}
	assert.Equal(t, map[string][]string{
		"serve":   nil,
		"migrate": {"up", "down", "status"},
		"token":   nil,
	}, names)
}
