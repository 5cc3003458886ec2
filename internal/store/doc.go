// Package store defines the persistence contracts the HTTP layer depends on.
// Business code talks to Repository and Transactor; the gorm backed
// implementation lives in internal/platform/database.
package store
