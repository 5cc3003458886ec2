package database

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		err     error
		want    error
		wantNil bool
	}{
		{name: "nil", op: OpCreate, err: nil, wantNil: true},
		{name: "record not found", op: OpFind, err: gorm.ErrRecordNotFound, want: store.ErrNotFound},
		{name: "gorm duplicate", op: OpCreate, err: gorm.ErrDuplicatedKey, want: store.ErrDuplicate},
		{name: "pg unique", op: OpCreate, err: &pgconn.PgError{Code: "23505", ConstraintName: "rooms_code_key"}, want: store.ErrDuplicate},
		{name: "pg foreign key on create", op: OpCreate, err: &pgconn.PgError{Code: "23503"}, want: store.ErrReferenceNotFound},
		{name: "pg foreign key on update", op: OpUpdate, err: &pgconn.PgError{Code: "23503"}, want: store.ErrReferenceNotFound},
		{name: "pg foreign key on delete", op: OpDelete, err: &pgconn.PgError{Code: "23503"}, want: store.ErrHasDependents},
		{name: "pg check", op: OpCreate, err: &pgconn.PgError{Code: "23514"}, want: store.ErrInvalidEntity},
		{name: "pg not null", op: OpUpdate, err: &pgconn.PgError{Code: "23502", ColumnName: "name"}, want: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError("rooms", tt.op, tt.err)
			if tt.wantNil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)

			var se *store.StoreError
			if assert.ErrorAs(t, got, &se) {
				assert.Equal(t, "rooms", se.Entity)
				assert.Equal(t, tt.op, se.Operation)
			}
		})
	}
}

func TestMapErrorKeepsUnknownErrors(t *testing.T) {
	cause := errors.New("connection reset")
	got := MapError("rooms", OpFind, cause)

	assert.ErrorIs(t, got, cause)
	assert.NotErrorIs(t, got, store.ErrNotFound)
	assert.False(t, IsUniqueViolation(cause))
	assert.False(t, IsForeignKeyViolation(cause))
}
