// Package errors provides a lightweight structured error type (PressError)
// for category-based classification in the build pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an mdpress error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig ErrorCategory = "config"

	// Filesystem read/write errors during a build
	CategoryFileSystem ErrorCategory = "filesystem"

	// Markdown or template rendering errors
	CategoryRender ErrorCategory = "render"

	// Platform capability errors (e.g. filesystem watch unsupported)
	CategoryEnvironment ErrorCategory = "environment"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// PressError is a structured error with category, severity, and context
type PressError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PressError
type ContextFields map[string]any

// Error implements the error interface
func (e *PressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PressError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PressError) WithContext(key string, value any) *PressError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PressError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PressError {
	return &PressError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PressError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PressError {
	return &PressError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// ConfigError creates a fatal configuration error
func ConfigError(message string) *PressError {
	return &PressError{
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pe, ok := err.(*PressError); ok {
		return pe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a PressError
func GetCategory(err error) ErrorCategory {
	if pe, ok := err.(*PressError); ok {
		return pe.Category
	}
	return CategoryInternal
}
