// Package errors provides structured error types for racklayout.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the core
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Configuration validation failures (abort the layout)
//   - GEOMETRY_OVERFLOW: Gaps or margins exceed the available space (abort the layout)
//   - UNMATCHED_PALLET: A pallet could not be placed (recorded as a warning only)
//   - UNDERSIZED_CELL: A storage cell is below the minimum rack size (validation warning)
//   - NETWORK_*, INTERNAL_*: Infrastructure failures in the hosting layers
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "num_rows must be positive, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidUnit   Code = "INVALID_UNIT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Geometry errors
	ErrCodeGeometryOverflow Code = "GEOMETRY_OVERFLOW"

	// Layout diagnostics (non-fatal)
	ErrCodeUnmatchedPallet Code = "UNMATCHED_PALLET"
	ErrCodeUndersizedCell  Code = "UNDERSIZED_CELL"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsConfigError reports whether err is one the caller can only recover from by
// fixing the warehouse configuration.
func IsConfigError(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidUnit, ErrCodeInvalidFormat, ErrCodeGeometryOverflow:
		return true
	}
	return false
}
