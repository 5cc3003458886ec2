// Package openapi exports the registered contracts as an OpenAPI document.
//
// Describe projects a contract into plain data; NewDocument feeds those
// projections to the swaggest reflector so the published document is
// derived from the same schemas and validate tags the server enforces.
package openapi

import (
	"net/http"
	"reflect"
	"sort"

	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/contract"
	"github.com/ominira-unicamp/pomi-backend-sub000/internal/api/shared"
)

// Description is the documentation view of one operation.
type Description struct {
	Method      string
	Pattern     string
	OperationID string
	Summary     string
	Tags        []string

	// Path, Query and Body are nil for undeclared parts.
	Path  reflect.Type
	Query reflect.Type
	Body  reflect.Type

	Responses map[int]ResponseDescription
}

// ResponseDescription documents one status code. Schema is nil for
// bodyless responses.
type ResponseDescription struct {
	Schema      reflect.Type
	Description string
}

// Statuses returns the documented status codes in ascending order.
func (d Description) Statuses() []int {
	statuses := make([]int, 0, len(d.Responses))
	for status := range d.Responses {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	return statuses
}

var defaultDescriptions = map[int]string{
	http.StatusOK:                  "successful response",
	http.StatusCreated:             "resource created",
	http.StatusNoContent:           "no content",
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "not found",
	http.StatusInternalServerError: "internal server error",
}

// DefaultDescription is the description used for status when the contract
// does not give one.
func DefaultDescription(status int) string {
	if d, ok := defaultDescriptions[status]; ok {
		return d
	}
	return "response"
}

// injected are the responses every operation can produce whether or not its
// contract declares them.
var injected = map[int]reflect.Type{
	http.StatusBadRequest:          reflect.TypeFor[contract.Report](),
	http.StatusInternalServerError: reflect.TypeFor[shared.ErrorResponse](),
}

// Describe builds the documentation view of op. It never modifies op.
func Describe(op contract.Operation) Description {
	d := Description{
		Method:      op.Method,
		Pattern:     op.Pattern,
		OperationID: op.OperationID,
		Summary:     op.Summary,
		Tags:        append([]string(nil), op.Tags...),
		Path:        op.Path,
		Query:       op.Query,
		Body:        op.Body,
		Responses:   make(map[int]ResponseDescription),
	}

	for _, resp := range op.Output.Responses() {
		description := resp.Description
		if description == "" {
			description = DefaultDescription(resp.Status)
		}
		d.Responses[resp.Status] = ResponseDescription{
			Schema:      schemaType(resp.Schema),
			Description: description,
		}
	}

	for status, schema := range injected {
		if _, declared := d.Responses[status]; !declared {
			d.Responses[status] = ResponseDescription{
				Schema:      schema,
				Description: DefaultDescription(status),
			}
		}
	}

	return d
}

// schemaType unwraps pointer prototypes to the bare type.
func schemaType(schema any) reflect.Type {
	if schema == nil {
		return nil
	}
	t := reflect.TypeOf(schema)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
