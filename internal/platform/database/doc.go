// Package database is the gorm backed implementation of the store
// contracts. It opens PostgreSQL (pgx) or SQLite (modernc) connections,
// translates driver errors into store sentinels and runs the embedded goose
// migrations.
package database
