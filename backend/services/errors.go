package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("missing bearer token")
	ErrForbidden          = errors.New("invalid or expired token")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError wraps a store failure. Clients only ever see a generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AggregationError means at least one statistics query failed; no partial result is returned.
type AggregationError struct {
	Stats string
	Err   error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s statistics: %v", e.Stats, e.Err)
}

func (e *AggregationError) Unwrap() error {
	return e.Err
}
