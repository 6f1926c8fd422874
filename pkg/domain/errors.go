// Package domain holds the error vocabulary shared by every layer of the service.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. A DomainError always wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// DomainError is a classified, caller-facing failure.
type DomainError struct {
	Err     error
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the kind so errors.Is(err, ErrConflict) works through wrapping.
func (e *DomainError) Unwrap() error { return e.Err }

// NewNotFoundError reports that the named entity does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	msg := fmt.Sprintf("%s not found", entity)
	if id != "" {
		msg = fmt.Sprintf("%s %s not found", entity, id)
	}
	return &DomainError{Err: ErrNotFound, Message: msg}
}

// NewConflictError reports a uniqueness or state conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Err: ErrConflict, Message: message}
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Err: ErrValidation, Message: message}
}

// NewUnauthorizedError reports missing or bad credentials.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Err: ErrUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller acting outside its rights.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Err: ErrForbidden, Message: message}
}

// KindOf returns the sentinel kind of err, or nil when err is not a DomainError.
func KindOf(err error) error {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Err
	}
	return nil
}
