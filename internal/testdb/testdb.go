package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/config"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/database"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// Config returns the database configuration used by Open.
func Config() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		URL:          ":memory:",
		MaxOpenConns: 1,
	}
}

// Open returns a fresh in-memory SQLite database with every migration
// applied. The database is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(Config())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		_ = database.Close(db)
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, database.Migrate(ctx, db, database.DriverSQLite, database.MigrateUp),
		"failed to run migrations")

	return db
}

// Insert creates each row in order and fails the test on the first error.
// Generated IDs are written back into the rows.
func Insert(t testing.TB, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error, "failed to insert %T", row)
	}
}
