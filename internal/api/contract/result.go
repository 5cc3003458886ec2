package contract

import "net/http"

// Result is the value a business function returns. Status selects which
// declared response is written; Body is serialized as its JSON body.
//
// A zero Result declares no status at all and is rejected by the binder.
type Result struct {
	Status int
	Body   any
}

// NotFoundBody is the body of every 404 response.
type NotFoundBody struct {
	Description string `json:"description"`
}

// Status builds a Result for an arbitrary status code.
func Status(code int, body any) Result {
	return Result{Status: code, Body: body}
}

// OK builds a 200 Result.
func OK(body any) Result {
	return Result{Status: http.StatusOK, Body: body}
}

// Created builds a 201 Result.
func Created(body any) Result {
	return Result{Status: http.StatusCreated, Body: body}
}

// NoContent builds a bodyless 204 Result.
func NoContent() Result {
	return Result{Status: http.StatusNoContent}
}

// BadRequest builds a 400 Result carrying report.
func BadRequest(report *Report) Result {
	return Result{Status: http.StatusBadRequest, Body: report}
}

// NotFound builds a 404 Result with a human readable description.
func NotFound(description string) Result {
	return Result{Status: http.StatusNotFound, Body: NotFoundBody{Description: description}}
}
