package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/platform/logger"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

type txKey struct{}

// Conn returns the transaction stored in ctx by RunInTransaction, or db
// bound to ctx when there is none.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

// Transactor is the gorm implementation of store.Transactor.
type Transactor struct {
	db *gorm.DB
}

var _ store.Transactor = (*Transactor)(nil)

// NewTransactor returns a Transactor over db.
func NewTransactor(db *gorm.DB) *Transactor {
	return &Transactor{db: db}
}

// RunInTransaction executes fn within a database transaction.
// If fn returns an error or panics, the transaction is rolled back.
// Otherwise, the transaction is committed. A call made with a context that
// already carries a transaction runs fn inside it.
func (t *Transactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	log := logger.FromContextOrDefault(ctx)

	tx := t.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("failed to begin transaction", slog.String("error", tx.Error.Error()))
		return fmt.Errorf("%w: begin: %v", store.ErrTransactionFailed, tx.Error)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback().Error; rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic", slog.Any("panic", p))
			}
			// ALLOW-PANIC: Propagating caught panic from transaction
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("error rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		log.Debug("rolled back transaction due to error", slog.String("error", err.Error()))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %v", store.ErrTransactionFailed, err)
	}

	log.Debug("transaction committed successfully")
	return nil
}
