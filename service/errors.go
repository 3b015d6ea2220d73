package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup by id matches nothing.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when a user reads or mutates a resource
// owned by someone else without the admin role.
var ErrUnauthorized = errors.New("unauthorized")

// ErrCheckoutInProgress is returned when a checkout attempt starts while
// another is still in Processing.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

// ValidationError marks missing or invalid input. The flow that raised it
// does not proceed; the caller surfaces the message and stays put.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func required(field string) error {
	return &ValidationError{Field: field}
}
