package service

import (
	"errors"
	"fmt"
)

// ErrNotFoundOrForbidden deliberately conflates "does not exist" and
// "not yours": callers never learn whether another user's draft exists.
var ErrNotFoundOrForbidden = errors.New("not found or not authorized")

// ErrSelfFollow is the one hard client error in the follow graph.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ValidationError reports a missing or malformed required field with
// field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
