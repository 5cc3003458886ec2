package database

import (
	"fmt"
	"time"

	gormpostgres "gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqlitePragmas run on every SQLite connection.
var sqlitePragmas = []string{
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
	"PRAGMA trusted_schema = OFF;",
}

// Open connects to the configured database and applies pool settings.
// SQLite connections are limited to one so in-memory databases survive for
// the lifetime of the pool.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = gormpostgres.Open(cfg.URL)
	case DriverSQLite:
		dialector = gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: cfg.URL})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 NewGormLogger(time.Second),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql db: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		for _, stmt := range sqlitePragmas {
			if _, err := sqlDB.Exec(stmt); err != nil {
				_ = sqlDB.Close()
				return nil, fmt.Errorf("exec %q: %w", stmt, err)
			}
		}
		return db, nil
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen / 2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
