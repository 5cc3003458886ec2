package store

import "context"

// Op is a comparison operator usable in a Filter.
type Op string

// Supported filter operators.
const (
	OpEq  Op = "="
	OpNe  Op = "<>"
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpIn  Op = "IN"
)

// Filter is a single column comparison. Filters are ANDed together.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq is shorthand for an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Query selects rows for FindMany and Count. Where holds column equalities;
// Filters hold everything else. Skip and Take are ignored by Count; a zero
// Take means no limit.
type Query struct {
	Where   map[string]any
	Filters []Filter
	Order   string
	Skip    int
	Take    int
}

// Repository is the data access collaborator for one entity type.
type Repository[T any] interface {
	// FindUnique returns the single row matching where, or ErrNotFound.
	FindUnique(ctx context.Context, where map[string]any) (*T, error)

	// FindMany returns the rows matching q, in q.Order.
	FindMany(ctx context.Context, q Query) ([]T, error)

	// Count returns how many rows match q, ignoring paging.
	Count(ctx context.Context, q Query) (int64, error)

	// Create inserts entity and fills its generated ID.
	Create(ctx context.Context, entity *T) error

	// Update overwrites the row with entity's primary key, or returns
	// ErrNotFound when no such row exists.
	Update(ctx context.Context, entity *T) error

	// Delete removes the rows matching where, or returns ErrNotFound when
	// nothing matched.
	Delete(ctx context.Context, where map[string]any) error
}

// TxFn is a unit of work run inside a transaction. Repositories called with
// the ctx it receives take part in the transaction.
type TxFn func(ctx context.Context) error

// Transactor runs units of work atomically.
type Transactor interface {
	// RunInTransaction commits when fn returns nil and rolls back when it
	// returns an error or panics. Nested calls join the outer transaction.
	RunInTransaction(ctx context.Context, fn TxFn) error
}
