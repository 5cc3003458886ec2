package domain

import "errors"

// Domain validation errors.
var (
	// ErrValidation is wrapped by every entity validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTimeRange is returned when a time slot does not start
	// before it ends.
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrInvalidTimeFormat is returned for times not written as HH:MM.
	ErrInvalidTimeFormat = errors.New("time must use the HH:MM format")
)
