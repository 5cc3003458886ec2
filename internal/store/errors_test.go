package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreError(t *testing.T) {
	tests := []struct {
		name    string
		err     *StoreError
		want    string
		wrapped error
	}{
		{
			name:    "with cause",
			err:     NewStoreError("rooms", "create", "unique constraint violated", ErrDuplicate),
			want:    "create rooms: unique constraint violated: entity already exists",
			wrapped: ErrDuplicate,
		},
		{
			name: "without cause",
			err:  NewStoreError("classes", "delete", "refusing unconditional delete", nil),
			want: "delete classes: refusing unconditional delete",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.wrapped, tt.err.Unwrap())
		})
	}
}

func TestStoreErrorMatching(t *testing.T) {
	err := fmt.Errorf("room 7: %w", NewStoreError("rooms", "delete", "still referenced", ErrHasDependents))

	assert.ErrorIs(t, err, ErrHasDependents)
	assert.NotErrorIs(t, err, ErrNotFound)

	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "rooms", se.Entity)
	assert.Equal(t, "delete", se.Operation)
}
