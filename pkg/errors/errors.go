// Package errors provides structured error types for maskcompo.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the preview server and library callers
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad parameters, formats, recipes)
//   - NEGATIVE_DERIVED: A dimension computed from valid inputs came out negative
//   - UNKNOWN_* / MISSING_* / UNDECLARED_*: Component declaration mismatches
//   - NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDimension, "signal_width must be >= 0, got %g", w)
//	if errors.Is(err, errors.ErrCodeInvalidDimension) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render %s", format)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeNegativeDerived  Code = "NEGATIVE_DERIVED"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidRecipe    Code = "INVALID_RECIPE"

	// Component declaration errors
	ErrCodeUnknownComponent Code = "UNKNOWN_COMPONENT"
	ErrCodeUnknownOption    Code = "UNKNOWN_OPTION"
	ErrCodeMissingOption    Code = "MISSING_OPTION"
	ErrCodeUndeclaredLayer  Code = "UNDECLARED_LAYER"
	ErrCodeUndeclaredMark   Code = "UNDECLARED_MARK"
	ErrCodeMissingMark      Code = "MISSING_MARK"
	ErrCodeDuplicateName    Code = "DUPLICATE_NAME"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// Only the outermost *Error is consulted, so a Wrap with a new code masks
// the inner code.
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

// IsValidation reports whether err is caused by caller input rather than by
// an internal failure. The preview server maps these to HTTP 400.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidDimension, ErrCodeNegativeDerived,
		ErrCodeInvalidFormat, ErrCodeInvalidRecipe, ErrCodeUnknownOption,
		ErrCodeMissingOption:
		return true
	}
	return false
}
