package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// MigrationsTable is the goose version table.
const MigrationsTable = "schema_migrations"

// Migration commands accepted by Migrate.
const (
	MigrateUp      = "up"
	MigrateDown    = "down"
	MigrateStatus  = "status"
	MigrateVersion = "version"
)

// ErrUnknownCommand is returned by Migrate for commands it does not support.
var ErrUnknownCommand = errors.New("unknown migration command")

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger implements goose.Logger on top of slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit; goose returns the error to the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// gooseDialect maps a driver name to the goose dialect and the embedded
// migrations directory.
func gooseDialect(driver string) (string, string, error) {
	switch driver {
	case DriverPostgres:
		return "postgres", "migrations/postgres", nil
	case DriverSQLite:
		return "sqlite3", "migrations/sqlite", nil
	}
	return "", "", fmt.Errorf("unsupported database driver %q", driver)
}

// Migrations returns the embedded migration files for driver.
func Migrations(driver string) (fs.FS, error) {
	_, dir, err := gooseDialect(driver)
	if err != nil {
		return nil, err
	}
	return fs.Sub(migrationsFS, dir)
}

// Migrate runs an embedded goose migration command against db.
func Migrate(ctx context.Context, db *gorm.DB, driver, command string) error {
	dialect, dir, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql db: %w", err)
	}

	log := logger.FromContextOrDefault(ctx).With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", dialect),
	)

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{log: log})
	goose.SetBaseFS(migrationsFS)
	goose.SetTableName(MigrationsTable)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	switch command {
	case MigrateUp:
		err = goose.UpContext(ctx, sqlDB, dir)
	case MigrateDown:
		err = goose.DownContext(ctx, sqlDB, dir)
	case MigrateStatus:
		err = goose.StatusContext(ctx, sqlDB, dir)
	case MigrateVersion:
		var version int64
		version, err = goose.GetDBVersionContext(ctx, sqlDB)
		if err == nil {
			log.Info("current migration version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration command completed")
	return nil
}
