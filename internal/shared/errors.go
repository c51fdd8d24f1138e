// Package shared holds the error taxonomy used across the journal client.
//
// Three kinds of failure reach the user:
//   - ValidationError: raised client-side before any service call.
//   - AuthError: reported by the hosted auth service, shown verbatim.
//   - StoreError: reported by an entry backend on load, append or clear.
package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a session and none exists.
	ErrNotAuthenticated = errors.New("not signed in")
	// ErrNoRecoverySession is returned when a password change is attempted outside a recovery flow.
	ErrNoRecoverySession = errors.New("no active recovery session")
	// ErrNotConfirmed is returned when a destructive operation was declined.
	ErrNotConfirmed = errors.New("operation not confirmed")
	// ErrSubmitInFlight is returned when a submission is already running.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	// ErrNotConfigured is returned when the hosted service URL or key is missing.
	ErrNotConfigured = errors.New("service not configured")
)

// ValidationError describes a field-level problem found before contacting any service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// AuthError is an error reported by the auth service. Message is meant to be
// displayed as is.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// StoreError wraps a failure of the persistent entry store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s entries: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuth reports whether err is or wraps an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsStore reports whether err is or wraps a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
