package contract

import (
	"reflect"
)

// Empty marks an input part (path, query or body) that an operation does
// not declare. Undeclared parts are neither checked nor required.
type Empty struct{}

var emptyType = reflect.TypeFor[Empty]()

// Input carries the validated path, query and body values of a request.
type Input[P, Q, B any] struct {
	Path  P
	Query Q
	Body  B
}

// Contract describes one API operation.
//
// P, Q and B are the path, query and body schemas. They are structs whose
// path, query and json tags name the fields and whose validate tags carry
// the constraints. Use Empty for a part the operation does not accept.
type Contract[P, Q, B any] struct {
	Method      string
	Pattern     string
	OperationID string
	Summary     string
	Tags        []string
	Output      Output
}

// Operation returns the non-generic projection of the contract.
func (c Contract[P, Q, B]) Operation() Operation {
	return Operation{
		Method:      c.Method,
		Pattern:     c.Pattern,
		OperationID: c.OperationID,
		Summary:     c.Summary,
		Tags:        append([]string(nil), c.Tags...),
		Path:        declaredType[P](),
		Query:       declaredType[Q](),
		Body:        declaredType[B](),
		Output:      c.Output,
	}
}

// Operation is a Contract with its type parameters resolved to reflect
// types. A nil Path, Query or Body means the part is not declared.
type Operation struct {
	Method      string
	Pattern     string
	OperationID string
	Summary     string
	Tags        []string
	Path        reflect.Type
	Query       reflect.Type
	Body        reflect.Type
	Output      Output
}

// Declared reports whether T is a declared input part.
func Declared[T any]() bool {
	return declaredType[T]() != nil
}

func declaredType[T any]() reflect.Type {
	t := reflect.TypeFor[T]()
	if t == emptyType {
		return nil
	}
	return t
}
