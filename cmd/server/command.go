package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/database"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/service/auth"
)

// pingTimeout bounds the database check done at startup.
const pingTimeout = 5 * time.Second

// newCommand builds the pomi command tree. serve runs when no subcommand
// is given.
func newCommand() *cli.Command {
	serve := &cli.Command{
		Name:   "serve",
		Usage:  "run the HTTP API server",
		Action: runServe,
	}

	return &cli.Command{
		Name:   "pomi",
		Usage:  "academic scheduling API",
		Action: runServe,
		Commands: []*cli.Command{
			serve,
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Commands: []*cli.Command{
					migrateCommand(database.MigrateUp, "apply every pending migration"),
					migrateCommand(database.MigrateDown, "roll back the latest migration"),
					migrateCommand(database.MigrateStatus, "list applied and pending migrations"),
				},
			},
			{
				Name:  "token",
				Usage: "mint an access token for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user-id",
						Usage:    "UUID of the token subject",
						Required: true,
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runToken(ctx, cmd.Root().Writer, cmd.String("user-id"))
				},
			},
		},
	}
}

func migrateCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runMigrate(ctx, name)
		},
	}
}

// loadAppConfig loads the configuration and sets up the logger from it.
func loadAppConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"auth_disabled", cfg.Auth.Disabled)
	return cfg, log, nil
}

// openDatabase opens the configured database and checks that it answers.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established", "driver", cfg.Driver)
	return db, nil
}

func runServe(ctx context.Context, _ *cli.Command) error {
	cfg, log, err := loadAppConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		_ = database.Close(db)
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

func runMigrate(ctx context.Context, command string) error {
	cfg, log, err := loadAppConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()

	if err := database.Migrate(ctx, db, cfg.Database.Driver, command); err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	log.Info("migration command completed", "command", command)
	return nil
}

// runToken writes a signed access token for userID to w.
func runToken(ctx context.Context, w io.Writer, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	return writeToken(ctx, w, cfg.Auth, id)
}

func writeToken(ctx context.Context, w io.Writer, cfg config.AuthConfig, userID uuid.UUID) error {
	jwtService, err := auth.NewJWTService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	token, err := jwtService.GenerateToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	if w == nil {
		w = os.Stdout
	}
	_, err = fmt.Fprintln(w, token)
	return err
}
