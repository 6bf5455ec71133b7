// Package models defines the persisted entities and the domain errors
// shared by the service and controller layers. The sentinel values let
// controllers pick an HTTP status without string matching.
package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced table, reservation,
// assignment or user does not exist.
var ErrNotFound = errors.New("record not found")

// ErrCapacityExceeded is returned when a party size exceeds the
// capacity of the requested table.
var ErrCapacityExceeded = errors.New("party size exceeds table capacity")

// ErrSlotUnavailable is returned when the requested window overlaps an
// existing non-cancelled reservation on the same table.
var ErrSlotUnavailable = errors.New("table is not available for the requested time")

// ErrInvalidState is returned when an operation is attempted on a record
// whose lifecycle state forbids it, e.g. modifying a cancelled reservation.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ValidationError reports malformed input: missing fields, non-positive
// capacity or party size, end before start.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
