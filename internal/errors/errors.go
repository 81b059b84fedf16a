// Package errors provides a lightweight structured error type (CompilerError)
// for category-based classification in the compile pipeline and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory classifies a CompilerError for exit-code mapping and logging.
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Content errors
	CategorySource   ErrorCategory = "source"   // a page directory lacks a required file
	CategoryMetadata ErrorCategory = "metadata" // metadata.json is not a valid JSON object

	// Compile and I/O errors
	CategoryCompile    ErrorCategory = "compile"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryDaemon   ErrorCategory = "daemon"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// CompilerError is a structured error with category, severity, and context.
// Every compile-path error is fatal to the run: the compiler never writes a
// partial index, so classification exists for reporting, not recovery.
type CompilerError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for CompilerError.
type ContextFields map[string]any

// Error implements the error interface.
func (e *CompilerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *CompilerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error.
func (e *CompilerError) WithContext(key string, value any) *CompilerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new CompilerError.
func New(category ErrorCategory, severity ErrorSeverity, message string) *CompilerError {
	return &CompilerError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new CompilerError that wraps an existing error.
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *CompilerError {
	return &CompilerError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category.
func IsCategory(err error, category ErrorCategory) bool {
	if ce, ok := err.(*CompilerError); ok {
		return ce.Category == category
	}
	return false
}
