package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is the absence signal shared by both storage backends.
// Lookups on an absent id return it instead of panicking or inventing a
// zero entity; callers check with errors.Is before proceeding.
var ErrNotFound = errors.New("not found")

// ValidationError reports a field value violating a format, range or
// required-ness rule. It is raised before any mutation is applied, so the
// entity it was raised for is unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// TypeMismatchError reports a value of the wrong kind for a field, e.g. a
// JSON string where a number is expected. Callers treat it exactly like a
// validation failure.
type TypeMismatchError struct {
	Field string
	Want  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s must be of type %s", e.Field, e.Want)
}

// ConflictError reports a uniqueness violation on an attribute, currently
// only user emails.
type ConflictError struct {
	Attribute string
	Value     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already taken", e.Attribute, e.Value)
}
