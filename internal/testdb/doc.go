// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb
