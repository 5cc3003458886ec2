package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/access"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/endpoint"
	apiMiddleware "github.com/ominira-unicamp/pomi-backend-sub000/internal/api/middleware"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/openapi"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
)

// Routes served by the application itself.
const (
	healthPath  = "/health"
	openAPIPath = "/openapi.json"
	docsPath    = "/docs"
)

const healthTimeout = 2 * time.Second

// setupRouter builds the HTTP handler: shared middleware, bearer
// authentication outside the public exceptions, every resource module and
// the API documentation.
func (app *application) setupRouter() (http.Handler, error) {
	modules := api.Modules(app.deps)

	own := access.NewRegistry().
		AddException(http.MethodGet, healthPath).
		AddException(http.MethodGet, openAPIPath).
		AddException(http.MethodGet, docsPath).
		AddException(http.MethodGet, docsPath+"/*")
	registry := access.Merge(own, endpoint.Exceptions(modules...))

	doc, err := openapi.NewDocument(
		openapi.Info{
			Title:       app.config.Docs.Title,
			Version:     app.config.Docs.Version,
			Description: "Academic scheduling API: institutes, courses, curricula, classes and room bookings.",
		},
		endpoint.Operations(modules...),
		func(method, pattern string) bool { return !registry.IsExempt(method, pattern) },
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}

	var verifier access.Verifier
	if app.jwtService != nil {
		verifier = app.jwtService
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(apiMiddleware.Recover)
	r.Use(middleware.RequestSize(app.config.Server.MaxBodyBytes))
	r.Use(registry.Middleware(verifier, app.config.Auth.Disabled))

	endpoint.Mount(r, modules...)

	r.Get(healthPath, app.health)
	r.Method(http.MethodGet, openAPIPath, openapi.Handler(doc))
	r.Get(docsPath, func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, docsPath+"/index.html", http.StatusMovedPermanently)
	})
	r.Method(http.MethodGet, docsPath+"/*", openapi.UIHandler(openAPIPath))

	app.logger.Info("router configured",
		"modules", len(modules),
		"public_routes", len(registry.Exceptions()))
	return r, nil
}

// health reports whether the database answers.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := app.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
