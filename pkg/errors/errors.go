// Package errors provides structured error types for bracket.
//
// Every failure that crosses a package boundary carries a machine-readable
// [Code] so that the CLI and the HTTP API can map it to an exit message or a
// status code without string matching.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (bad options, empty rounds)
//   - MALFORMED_LINEAGE: a match id that cannot be resolved to two
//     predecessors in the previous round
//   - NOT_FOUND: a tournament that does not exist in the store
//   - STORE_ERROR / NETWORK_ERROR / TIMEOUT: collaborator failures
//   - INTERNAL_ERROR: layout and render disagree, or other invariants broke
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedLineage, "match %q: odd token count", id)
//	if errors.Is(err, errors.ErrCodeMalformedLineage) {
//	    // abort the render
//	}
//
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "load tournament %s", id)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidID      Code = "INVALID_ID"

	// Bracket structure errors
	ErrCodeMalformedLineage Code = "MALFORMED_LINEAGE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Collaborator errors
	ErrCodeStore   Code = "STORE_ERROR"
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// IsTransient reports whether err is worth retrying: network failures and
// timeouts are, everything else (including malformed brackets) is not.
func IsTransient(err error) bool {
	switch GetCode(err) {
	case ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}
