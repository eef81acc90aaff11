// Package errs provides the typed errors the renewal pipeline reacts to.
// Configuration errors are fatal and never retried; an authorization-denied
// probe result triggers the credential fallback chain; not-found results are
// treated as absence rather than failure. Every other error propagates
// unchanged.
package errs

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates a required field is missing or a configured
// type has no registered handler. It names the offending field or type.
type ConfigurationError struct {
	Field   string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}

	return fmt.Sprintf("configuration error on %s: %s", e.Field, e.Message)
}

// NewConfiguration creates a ConfigurationError for the given field.
func NewConfiguration(field, message string) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Message: message,
	}
}

// IsConfiguration returns true if the error is a ConfigurationError.
func IsConfiguration(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// AuthorizationDeniedError indicates a backing service rejected the caller's
// identity. It is the only signal the fallback chain reacts to.
type AuthorizationDeniedError struct {
	Resource string
	Cause    error
}

func (e *AuthorizationDeniedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authorization denied by %s: %v", e.Resource, e.Cause)
	}

	return fmt.Sprintf("authorization denied by %s", e.Resource)
}

// Unwrap returns the underlying cause for errors.As/Is support.
func (e *AuthorizationDeniedError) Unwrap() error {
	return e.Cause
}

// NewAuthorizationDenied creates an AuthorizationDeniedError wrapping the
// original failure for diagnostics.
func NewAuthorizationDenied(resource string, cause error) *AuthorizationDeniedError {
	return &AuthorizationDeniedError{
		Resource: resource,
		Cause:    cause,
	}
}

// IsAuthorizationDenied returns true if the error is an
// AuthorizationDeniedError.
func IsAuthorizationDenied(err error) bool {
	var deniedErr *AuthorizationDeniedError
	return errors.As(err, &deniedErr)
}

// NotFoundError indicates a secret, certificate or object is absent.
type NotFoundError struct {
	Kind  string
	Name  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Unwrap returns the underlying cause for errors.As/Is support.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// NewNotFound creates a NotFoundError for the named object.
func NewNotFound(kind, name string, cause error) *NotFoundError {
	return &NotFoundError{
		Kind:  kind,
		Name:  name,
		Cause: cause,
	}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}
