// Package errors provides structured error types for PinMagik.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the core packages and the CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Load failures carry one of three codes the document codec distinguishes:
//   - UNKNOWN_NODE_KIND: a record names a kind id absent from the catalog
//   - MALFORMED_DOCUMENT: the document is structurally invalid
//   - DANGLING_CONNECTION: a connection points at a missing node or port
//
// The remaining codes cover project mutation, configuration and I/O.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownNodeKind, "unknown node kind 0x%04x", kind)
//	if errors.Is(err, errors.ErrCodeUnknownNodeKind) {
//	    // Handle load failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document load errors
	ErrCodeUnknownNodeKind    Code = "UNKNOWN_NODE_KIND"
	ErrCodeMalformedDocument  Code = "MALFORMED_DOCUMENT"
	ErrCodeDanglingConnection Code = "DANGLING_CONNECTION"
	ErrCodeUnknownProjectType Code = "UNKNOWN_PROJECT_TYPE"

	// Project and graph errors
	ErrCodeInvalidProject  Code = "INVALID_PROJECT"
	ErrCodeBoundaryNode    Code = "BOUNDARY_NODE"
	ErrCodeNodeNotFound    Code = "NODE_NOT_FOUND"
	ErrCodeDependencyCycle Code = "DEPENDENCY_CYCLE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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
// The outermost *Error wins, so a wrapped load error keeps its own code.
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
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
