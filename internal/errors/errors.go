// Package errors provides standardized domain errors with codes for the ReadNest API.
//
// Usage:
//
//	// In services - return typed errors
//	if nameTaken {
//	    return errors.DuplicateName("a shelf with this name already exists")
//	}
//
//	// In handlers - check with errors.Is
//	if errors.Is(err, errors.ErrProtectedShelf) {
//	    ...
//	}
//
//	// Or use the Code directly for switch statements
//	var domainErr *errors.Error
//	if errors.As(err, &domainErr) {
//	    switch domainErr.Code {
//	    case errors.CodeReservedName:
//	        ...
//	    }
//	}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the application.
const (
	CodeNotFound       Code = "NOT_FOUND"
	CodeUnauthorized   Code = "UNAUTHORIZED"
	CodeForbidden      Code = "FORBIDDEN"
	CodeValidation     Code = "VALIDATION"
	CodeConflict       Code = "CONFLICT"
	CodeInternal       Code = "INTERNAL"
	CodeReservedName   Code = "RESERVED_NAME"
	CodeDuplicateName  Code = "DUPLICATE_NAME"
	CodeProtectedShelf Code = "PROTECTED_SHELF"
	CodeAlreadyInShelf Code = "ALREADY_IN_SHELF"
)

// HTTPStatus returns the appropriate HTTP status code for an error code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeDuplicateName, CodeAlreadyInShelf:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden, CodeProtectedShelf:
		return http.StatusForbidden
	case CodeValidation, CodeReservedName:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus returns the HTTP status code for this error.
func (e *Error) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound       = &Error{Code: CodeNotFound, Message: "not found"}
	ErrUnauthorized   = &Error{Code: CodeUnauthorized, Message: "unauthorized"}
	ErrForbidden      = &Error{Code: CodeForbidden, Message: "forbidden"}
	ErrValidation     = &Error{Code: CodeValidation, Message: "validation error"}
	ErrConflict       = &Error{Code: CodeConflict, Message: "conflict"}
	ErrInternal       = &Error{Code: CodeInternal, Message: "internal error"}
	ErrReservedName   = &Error{Code: CodeReservedName, Message: "name is reserved for a standard shelf"}
	ErrDuplicateName  = &Error{Code: CodeDuplicateName, Message: "a shelf with this name already exists"}
	ErrProtectedShelf = &Error{Code: CodeProtectedShelf, Message: "standard shelves cannot be modified"}
	ErrAlreadyInShelf = &Error{Code: CodeAlreadyInShelf, Message: "book is already in this shelf"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg}
}

// Forbidden creates a forbidden error.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a conflict error.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// ReservedName creates a reserved name error.
func ReservedName(msg string) *Error {
	return &Error{Code: CodeReservedName, Message: msg}
}

// DuplicateName creates a duplicate name error.
func DuplicateName(msg string) *Error {
	return &Error{Code: CodeDuplicateName, Message: msg}
}

// ProtectedShelf creates a protected shelf error.
func ProtectedShelf(msg string) *Error {
	return &Error{Code: CodeProtectedShelf, Message: msg}
}

// AlreadyInShelf creates an already-in-shelf error.
func AlreadyInShelf(msg string) *Error {
	return &Error{Code: CodeAlreadyInShelf, Message: msg}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
