// Package errors provides custom error types for the foodmap system.
// These errors enable programmatic error checking and keep the read-path /
// write-path propagation asymmetry diagnosable throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the foodmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured indicates that a required endpoint, credential, or
	// key is absent or malformed. Non-fatal: callers fall back to the next
	// data source instead of surfacing this to the user.
	ErrNotConfigured = errors.New("not configured")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoCoordinates indicates that a place has no usable coordinate pair
	ErrNoCoordinates = errors.New("no coordinates")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// ConfigError represents a missing or malformed configuration value.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrNotConfigured
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// RemoteRequestError represents a failed exchange with the remote place
// collection. It carries the HTTP status and raw response body so callers
// can surface a truncated message to the user.
type RemoteRequestError struct {
	Operation  string // "list", "create", "update", "delete"
	StatusCode int
	Body       string
	Err        error
}

// Error implements the error interface
func (e *RemoteRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s failed (status %d): %s", e.Operation, e.StatusCode, truncate(e.Body, 200))
	}
	return fmt.Sprintf("remote %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *RemoteRequestError) Unwrap() error {
	return e.Err
}

// NewRemoteRequestError creates a new RemoteRequestError
func NewRemoteRequestError(operation string, statusCode int, body string, err error) *RemoteRequestError {
	return &RemoteRequestError{
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Err:        err,
	}
}

// ParseError represents an unexpected shape in a provider or store response.
// On the read path this is treated as absent data, never raised to the user.
type ParseError struct {
	Format  string // "json"
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// GeocodeError represents a failed address resolution.
type GeocodeError struct {
	Address string
	Info    string // provider info code or message
	Err     error
}

// Error implements the error interface
func (e *GeocodeError) Error() string {
	if e.Info != "" {
		return fmt.Sprintf("geocode failed for %q: %s", e.Address, e.Info)
	}
	return fmt.Sprintf("geocode failed for %q: %v", e.Address, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *GeocodeError) Unwrap() error {
	return e.Err
}

// PlanningError represents a failed route planning attempt.
type PlanningError struct {
	Mode    string
	Message string // "missing destination coordinates", "missing rest key", or provider info
	Err     error
}

// Error implements the error interface
func (e *PlanningError) Error() string {
	if e.Mode != "" {
		return fmt.Sprintf("route planning (%s) failed: %s", e.Mode, e.Message)
	}
	return fmt.Sprintf("route planning failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *PlanningError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PlanningError) Is(target error) bool {
	return target == ErrNoCoordinates && e.Message == "missing destination coordinates"
}

// LocationError represents a failed device/provider position fix. Reason is
// preserved verbatim from the provider for downstream classification.
type LocationError struct {
	Reason string
	Err    error
}

// Error implements the error interface
func (e *LocationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("location failed: %s", e.Reason)
	}
	return fmt.Sprintf("location failed: %v", e.Err)
}

// Unwrap implements errors.Unwrap
func (e *LocationError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "delete"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotConfigured checks if an error is a not-configured error
func IsNotConfigured(err error) bool {
	return errors.Is(err, ErrNotConfigured)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// truncate shortens s to at most n bytes for user-facing messages.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
