package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"

	// Caught before any network call; the controller state is untouched.
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Backend rejected the call because upstream state is missing
	// (no flashcards before a quiz, no quiz history before a plan).
	ErrPreconditionRequired ErrorCode = "PRECONDITION_REQUIRED"

	// Transport failure or any unclassified backend error.
	ErrBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"

	// A controller dropped a call because one of the same kind is
	// already pending.
	ErrOperationInFlight ErrorCode = "OPERATION_IN_FLIGHT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewValidationError(message string) *DomainError {
	return NewError(ErrValidation, message, nil)
}

func NewPreconditionError(message string, err error) *DomainError {
	return NewError(ErrPreconditionRequired, message, err)
}

func NewBackendError(message string, err error) *DomainError {
	return NewError(ErrBackendUnavailable, message, err)
}

func NewBusyError(operation string) *DomainError {
	return NewError(ErrOperationInFlight, fmt.Sprintf("%s is already in progress", operation), nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(ErrUnauthorized, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func codeOf(err error) (ErrorCode, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code, true
	}
	return "", false
}

// IsValidation reports whether err is a local validation error,
// i.e. no network call was made.
func IsValidation(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrValidation
}

// IsPrecondition reports whether err is a backend precondition rejection.
func IsPrecondition(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrPreconditionRequired
}

// IsBusy reports whether err means a duplicate call was dropped while
// another one was pending.
func IsBusy(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrOperationInFlight
}

// IsUnauthorized reports whether err means no live session exists.
func IsUnauthorized(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrUnauthorized
}
