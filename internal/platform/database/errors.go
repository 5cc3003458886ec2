package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// PostgreSQL error codes
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// Operations reported in StoreError and used to disambiguate foreign key
// violations.
const (
	OpFind   = "find"
	OpCount  = "count"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationCheck
	violationNotNull
)

// classify reports which constraint a driver error violated, and its name
// when the driver provides one.
func classify(err error) (violation, string) {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return violationUnique, ""
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return violationForeignKey, ""
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return violationUnique, pgErr.ConstraintName
		case foreignKeyViolationCode:
			return violationForeignKey, pgErr.ConstraintName
		case checkViolationCode:
			return violationCheck, pgErr.ConstraintName
		case notNullViolationCode:
			return violationNotNull, pgErr.ColumnName
		}
		return violationNone, ""
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return violationUnique, ""
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return violationForeignKey, ""
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return violationCheck, ""
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return violationNotNull, ""
		}
	}
	return violationNone, ""
}

// MapError translates a gorm or driver error raised by op on entity into a
// StoreError wrapping the matching store sentinel. A foreign key violation
// means a missing reference on create and update, and surviving dependents
// on delete. Unrecognised errors are wrapped without a sentinel.
func MapError(entity, op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.NewStoreError(entity, op, "record not found", store.ErrNotFound)
	}

	kind, constraint := classify(err)
	detail := func(what string) string {
		if constraint == "" {
			return what
		}
		return fmt.Sprintf("%s (%s)", what, constraint)
	}

	switch kind {
	case violationUnique:
		return store.NewStoreError(entity, op, detail("unique constraint violated"), store.ErrDuplicate)
	case violationForeignKey:
		if op == OpDelete {
			return store.NewStoreError(entity, op, detail("still referenced"), store.ErrHasDependents)
		}
		return store.NewStoreError(entity, op, detail("reference does not exist"), store.ErrReferenceNotFound)
	case violationCheck:
		return store.NewStoreError(entity, op, detail("check constraint violated"), store.ErrInvalidEntity)
	case violationNotNull:
		return store.NewStoreError(entity, op, detail("not null constraint violated"), store.ErrInvalidEntity)
	}

	return store.NewStoreError(entity, op, "database error", err)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	kind, _ := classify(err)
	return kind == violationUnique
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	kind, _ := classify(err)
	return kind == violationForeignKey
}
