package task

import "errors"

var (
	// ErrInvalidAction is returned for status transitions outside
	// {Start, Pause, Complete}
	ErrInvalidAction = errors.New("invalid status value")

	// ErrValidation is returned when a request is missing required fields
	ErrValidation = errors.New("validation failed")
)
