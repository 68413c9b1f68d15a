// Package errors provides structured error types for ticketsheet.
//
// Every error that should stop a run before any ticket is drawn carries a
// [Code]. The CLI prints the message and exits non-zero; the preview server
// maps codes to HTTP status codes.
//
// # Error Codes
//
//   - INVALID_*: configuration or input validation failures
//   - FILE_NOT_FOUND: a required input file is missing
//   - NO_BACKEND: the requested output format has no renderer
//   - INTERNAL_ERROR: unexpected failures while writing output
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidRange, "start %d is after end %d", start, end)
//	if errors.Is(err, errors.ErrCodeInvalidRange) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "write %s", path)
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
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidScale  Code = "INVALID_SCALE"
	ErrCodeInvalidGrid   Code = "INVALID_GRID"
	ErrCodeInvalidPaper  Code = "INVALID_PAPER"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidPolicy Code = "INVALID_POLICY"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNoBackend    Code = "NO_BACKEND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
	ErrCodeCanceled Code = "CANCELED"
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err is a configuration or input error, as opposed
// to a failure while producing output.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidRange, ErrCodeInvalidConfig,
		ErrCodeInvalidScale, ErrCodeInvalidGrid, ErrCodeInvalidPaper,
		ErrCodeInvalidColor, ErrCodeInvalidPolicy, ErrCodeInvalidPath,
		ErrCodeFileNotFound, ErrCodeNoBackend:
		return true
	}
	return false
}
