package contract

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyOutput is returned when an output declares no status code.
var ErrEmptyOutput = errors.New("output declares no status code")

// ErrDuplicateStatus is returned when a status code is declared twice.
var ErrDuplicateStatus = errors.New("duplicate status code")

// Response is one declared outcome of an operation.
type Response struct {
	Status int
	// Schema is a prototype of the body written for Status, or nil when the
	// response has no body. Pointers are allowed and are unwrapped for
	// documentation.
	Schema      any
	Description string
}

// Output is the ordered set of responses an operation may produce.
type Output struct {
	responses []Response
}

// Responses returns a copy of the declared responses in declaration order.
func (o Output) Responses() []Response {
	return append([]Response(nil), o.responses...)
}

// Lookup returns the response declared for status.
func (o Output) Lookup(status int) (Response, bool) {
	for _, r := range o.responses {
		if r.Status == status {
			return r, true
		}
	}
	return Response{}, false
}

// Declares reports whether status is part of the output.
func (o Output) Declares(status int) bool {
	_, ok := o.Lookup(status)
	return ok
}

// OutputBuilder assembles an Output incrementally.
type OutputBuilder struct {
	responses []Response
	errs      []error
}

// NewOutput starts an empty output.
func NewOutput() *OutputBuilder {
	return &OutputBuilder{}
}

// Add declares a response for status. Declaring the same status twice is
// reported by Build.
func (b *OutputBuilder) Add(status int, schema any, description string) *OutputBuilder {
	for _, r := range b.responses {
		if r.Status == status {
			b.errs = append(b.errs, fmt.Errorf("%w: %d", ErrDuplicateStatus, status))
			return b
		}
	}
	b.responses = append(b.responses, Response{
		Status:      status,
		Schema:      schema,
		Description: description,
	})
	return b
}

// OK declares a 200 response with the given body schema.
func (b *OutputBuilder) OK(schema any, description string) *OutputBuilder {
	return b.Add(http.StatusOK, schema, description)
}

// Created declares a 201 response with the given body schema.
func (b *OutputBuilder) Created(schema any, description string) *OutputBuilder {
	return b.Add(http.StatusCreated, schema, description)
}

// NoContent declares a bodyless 204 response.
func (b *OutputBuilder) NoContent(description string) *OutputBuilder {
	return b.Add(http.StatusNoContent, nil, description)
}

// BadRequest declares a 400 response carrying a validation Report.
func (b *OutputBuilder) BadRequest(description string) *OutputBuilder {
	return b.Add(http.StatusBadRequest, new(Report), description)
}

// NotFound declares a 404 response carrying a NotFoundBody.
func (b *OutputBuilder) NotFound(description string) *OutputBuilder {
	return b.Add(http.StatusNotFound, new(NotFoundBody), description)
}

// Build validates the declarations and returns the Output.
func (b *OutputBuilder) Build() (Output, error) {
	if len(b.errs) > 0 {
		return Output{}, errors.Join(b.errs...)
	}
	if len(b.responses) == 0 {
		return Output{}, ErrEmptyOutput
	}
	return Output{responses: append([]Response(nil), b.responses...)}, nil
}

// MustBuild is Build for package-level contract declarations.
func (b *OutputBuilder) MustBuild() Output {
	out, err := b.Build()
	if err != nil {
		// ALLOW-PANIC: contracts are declared at startup
		panic(fmt.Sprintf("contract: invalid output: %v", err))
	}
	return out
}
