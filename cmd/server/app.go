package main

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/database"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
)

// application holds the shared dependencies of the server so they can be
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *gorm.DB

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService
	deps       api.Dependencies
}

// newApplication wires the repositories and services over an open
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *gorm.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		deps:   newDependencies(db),
	}

	if cfg.Auth.Disabled {
		logger.Warn("authentication is disabled, every route is public")
	} else {
		jwtService, err := auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		app.jwtService = jwtService
		logger.Info("JWT authentication service initialized",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	logger.Info("application initialized")
	return app, nil
}

// newDependencies builds the gorm repositories of every resource.
func newDependencies(db *gorm.DB) api.Dependencies {
	return api.Dependencies{
		Institutes:        database.NewRepository[domain.Institute](db),
		Courses:           database.NewRepository[domain.Course](db),
		Professors:        database.NewRepository[domain.Professor](db),
		Rooms:             database.NewRepository[domain.Room](db),
		Programs:          database.NewRepository[domain.Program](db),
		Catalogs:          database.NewRepository[domain.Catalog](db),
		Specializations:   database.NewRepository[domain.Specialization](db),
		Curricula:         database.NewRepository[domain.Curriculum](db),
		CurriculumCourses: database.NewRepository[domain.CurriculumCourse](db),
		Students:          database.NewRepository[domain.Student](db),
		CourseOfferings:   database.NewRepository[domain.CourseOffering](db),
		Classes:           database.NewRepository[domain.Class](db),
		ClassProfessors:   database.NewRepository[domain.ClassProfessor](db),
		ClassSchedules:    database.NewRepository[domain.ClassSchedule](db),
		Transactor:        database.NewTransactor(db),
	}
}

// Run serves HTTP until ctx is done or the process is signalled.
func (app *application) Run(ctx context.Context) error {
	router, err := app.setupRouter()
	if err != nil {
		app.cleanup()
		return fmt.Errorf("failed to set up router: %w", err)
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := database.Close(app.db); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
