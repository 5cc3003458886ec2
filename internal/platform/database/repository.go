package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/store"
)

// Repository is the gorm implementation of store.Repository for entity type
// T. T must be a gorm model with a single primary key.
type Repository[T any] struct {
	db     *gorm.DB
	entity string
}

var _ store.Repository[struct{}] = (*Repository[struct{}])(nil)

// NewRepository returns a repository for T backed by db.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db, entity: tableName[T](db)}
}

func tableName[T any](db *gorm.DB) string {
	var zero T
	if t, ok := any(zero).(schema.Tabler); ok {
		return t.TableName()
	}
	if t, ok := any(&zero).(schema.Tabler); ok {
		return t.TableName()
	}
	return db.NamingStrategy.TableName(reflect.TypeOf(zero).Name())
}

// conn returns the transaction carried by ctx, or the pool.
func (r *Repository[T]) conn(ctx context.Context) *gorm.DB {
	return Conn(ctx, r.db)
}

// FindUnique implements store.Repository.
func (r *Repository[T]) FindUnique(ctx context.Context, where map[string]any) (*T, error) {
	var entity T
	err := applyWhere(r.conn(ctx), where).Take(&entity).Error
	if err != nil {
		return nil, MapError(r.entity, OpFind, err)
	}
	return &entity, nil
}

// FindMany implements store.Repository.
func (r *Repository[T]) FindMany(ctx context.Context, q store.Query) ([]T, error) {
	tx := applyQuery(r.conn(ctx), q)
	if q.Order != "" {
		tx = tx.Order(q.Order)
	} else {
		tx = tx.Order("id")
	}
	if q.Skip > 0 {
		tx = tx.Offset(q.Skip)
	}
	if q.Take > 0 {
		tx = tx.Limit(q.Take)
	}

	items := make([]T, 0)
	if err := tx.Find(&items).Error; err != nil {
		return nil, MapError(r.entity, OpFind, err)
	}
	return items, nil
}

// Count implements store.Repository.
func (r *Repository[T]) Count(ctx context.Context, q store.Query) (int64, error) {
	var total int64
	var zero T
	if err := applyQuery(r.conn(ctx).Model(&zero), q).Count(&total).Error; err != nil {
		return 0, MapError(r.entity, OpCount, err)
	}
	return total, nil
}

// Create implements store.Repository.
func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.conn(ctx).Create(entity).Error; err != nil {
		return MapError(r.entity, OpCreate, err)
	}
	return nil
}

// Update implements store.Repository. Every column is written, including
// zero values.
func (r *Repository[T]) Update(ctx context.Context, entity *T) error {
	res := r.conn(ctx).Model(entity).Select("*").Updates(entity)
	if res.Error != nil {
		return MapError(r.entity, OpUpdate, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NewStoreError(r.entity, OpUpdate, "no rows updated", store.ErrNotFound)
	}
	return nil
}

// Delete implements store.Repository.
func (r *Repository[T]) Delete(ctx context.Context, where map[string]any) error {
	if len(where) == 0 {
		return store.NewStoreError(r.entity, OpDelete, "refusing unconditional delete", store.ErrInvalidEntity)
	}
	var zero T
	res := applyWhere(r.conn(ctx), where).Delete(&zero)
	if res.Error != nil {
		return MapError(r.entity, OpDelete, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NewStoreError(r.entity, OpDelete, "no rows deleted", store.ErrNotFound)
	}
	return nil
}

func applyWhere(tx *gorm.DB, where map[string]any) *gorm.DB {
	if len(where) > 0 {
		tx = tx.Where(where)
	}
	return tx
}

func applyQuery(tx *gorm.DB, q store.Query) *gorm.DB {
	tx = applyWhere(tx, q.Where)
	for _, f := range q.Filters {
		tx = tx.Where(filterClause(f), f.Value)
	}
	return tx
}

func filterClause(f store.Filter) string {
	op := f.Op
	if op == "" {
		op = store.OpEq
	}
	if op == store.OpIn {
		return fmt.Sprintf("%s IN ?", quoteColumn(f.Column))
	}
	return fmt.Sprintf("%s %s ?", quoteColumn(f.Column), op)
}

// quoteColumn keeps only identifier characters so filter columns can never
// inject SQL.
func quoteColumn(column string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		}
		return -1
	}, column)
}
