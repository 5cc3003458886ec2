package store

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every Repository implementation. Callers test
// for them with errors.Is.
var (
	// ErrNotFound means no row matched.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means a uniqueness constraint rejected the write, such as
	// a second room with the same code.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means a check or not-null constraint rejected the
	// write.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrReferenceNotFound means a create or update points at a row that
	// does not exist.
	ErrReferenceNotFound = errors.New("referenced entity not found")

	// ErrHasDependents means a delete was blocked by rows that still
	// reference the entity.
	ErrHasDependents = errors.New("entity has dependents")

	// ErrTransactionFailed means a transaction could not begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")
)

// StoreError records the table and operation of a failed data access call.
// It unwraps to the sentinel, or to the driver error when none applies.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Operation, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Operation, e.Entity, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError for operation op on entity.
func NewStoreError(entity, op, message string, err error) *StoreError {
	return &StoreError{Entity: entity, Operation: op, Message: message, Err: err}
}
