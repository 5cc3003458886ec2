package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/domain"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/database"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/testdb"
)

func TestRunInTransaction(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		fn        func(ctx context.Context, rooms *database.Repository[domain.Room]) error
		wantErr   error
		wantPanic bool
		wantRooms int64
	}{
		{
			name: "commit",
			fn: func(ctx context.Context, rooms *database.Repository[domain.Room]) error {
				return rooms.Create(ctx, &domain.Room{Code: "CB01", Building: "CB", Capacity: 10})
			},
			wantRooms: 1,
		},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, rooms *database.Repository[domain.Room]) error {
				if err := rooms.Create(ctx, &domain.Room{Code: "CB01", Building: "CB", Capacity: 10}); err != nil {
					return err
				}
				return errBoom
			},
			wantErr: errBoom,
		},
		{
			name: "rollback on panic",
			fn: func(ctx context.Context, rooms *database.Repository[domain.Room]) error {
				if err := rooms.Create(ctx, &domain.Room{Code: "CB01", Building: "CB", Capacity: 10}); err != nil {
					return err
				}
				panic("boom")
			},
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testdb.Open(t)
			rooms := database.NewRepository[domain.Room](db)
			tx := database.NewTransactor(db)
			ctx := context.Background()

			run := func() error {
				return tx.RunInTransaction(ctx, func(ctx context.Context) error {
					return tt.fn(ctx, rooms)
				})
			}

			if tt.wantPanic {
				assert.Panics(t, func() { _ = run() })
			} else {
				err := run()
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					require.NoError(t, err)
				}
			}

			count, err := rooms.Count(ctx, store.Query{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRooms, count)
		})
	}
}

func TestRunInTransactionJoinsOuterTransaction(t *testing.T) {
	db := testdb.Open(t)
	rooms := database.NewRepository[domain.Room](db)
	tx := database.NewTransactor(db)
	ctx := context.Background()

	err := tx.RunInTransaction(ctx, func(ctx context.Context) error {
		inner := tx.RunInTransaction(ctx, func(ctx context.Context) error {
			return rooms.Create(ctx, &domain.Room{Code: "CB01", Building: "CB", Capacity: 10})
		})
		require.NoError(t, inner)
		return errors.New("outer failure")
	})
	require.Error(t, err)

	count, err := rooms.Count(ctx, store.Query{})
	require.NoError(t, err)
	assert.Zero(t, count, "inner work must roll back with the outer transaction")
}
