package contract

import (
	"fmt"
	"strings"
)

// ErrorCode is the machine readable kind of a FieldError.
type ErrorCode string

// Error codes shared by input validation and business rules.
const (
	CodeRequired          ErrorCode = "REQUIRED"
	CodeInvalidType       ErrorCode = "INVALID_TYPE"
	CodeInvalidValue      ErrorCode = "INVALID_VALUE"
	CodeInvalidFormat     ErrorCode = "INVALID_FORMAT"
	CodeInvalidEnumValue  ErrorCode = "INVALID_ENUM_VALUE"
	CodeTooSmall          ErrorCode = "TOO_SMALL"
	CodeTooBig            ErrorCode = "TOO_BIG"
	CodeInvalidJSON       ErrorCode = "INVALID_JSON"
	CodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	CodeReferenceNotFound ErrorCode = "REFERENCE_NOT_FOUND"
	CodeHasDependents     ErrorCode = "HAS_DEPENDENTS"
	CodeConflict          ErrorCode = "CONFLICT"
)

// DefaultReportMessage is the top level message of a validation Report.
const DefaultReportMessage = "Validation error"

// FieldError is a single validation or business-rule failure.
type FieldError struct {
	// Path locates the offending field, starting with the input part:
	// ["body", "schedules", "0", "roomId"].
	Path    []string  `json:"path"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewFieldError builds a FieldError for the given path segments.
func NewFieldError(code ErrorCode, message string, path ...string) FieldError {
	return FieldError{Path: append([]string(nil), path...), Code: code, Message: message}
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s (%s)", strings.Join(e.Path, "."), e.Message, e.Code)
}

// Report is the body of every 400 response.
type Report struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

// NewReport builds a Report with the default message.
func NewReport(errs ...FieldError) *Report {
	return &Report{
		Message: DefaultReportMessage,
		Errors:  append([]FieldError{}, errs...),
	}
}

// Add appends field errors to the report.
func (r *Report) Add(errs ...FieldError) {
	r.Errors = append(r.Errors, errs...)
}

// Empty reports whether the report carries no field errors.
func (r *Report) Empty() bool {
	return r == nil || len(r.Errors) == 0
}

// Error lets a Report travel as an error value.
func (r *Report) Error() string {
	if r.Empty() {
		return r.message()
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.String())
	}
	return r.message() + ": " + strings.Join(parts, "; ")
}

func (r *Report) message() string {
	if r == nil || r.Message == "" {
		return DefaultReportMessage
	}
	return r.Message
}
