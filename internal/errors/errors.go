package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Verso error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrMalformedCache    ErrorCode = "MALFORMED_CACHE"    // 500 (recovered by eviction)
	ErrMalformedResponse ErrorCode = "MALFORMED_RESPONSE" // 502 (recovered by advancing the cascade)
	ErrUnavailable       ErrorCode = "UNAVAILABLE"        // 503 (offline or network failure)
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// VersoError represents a structured error with code, status, and details.
type VersoError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *VersoError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *VersoError) Unwrap() error {
	return e.Cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *VersoError {
	return &VersoError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a key or chapter cannot be found.
func NewNotFound(identifier string) *VersoError {
	return &VersoError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewMalformedCache creates an error for a stored cache entry that fails to parse.
func NewMalformedCache(key string, cause error) *VersoError {
	msg := fmt.Sprintf("cache entry %q is malformed", key)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &VersoError{
		Code:    ErrMalformedCache,
		Status:  500,
		Message: msg,
		Details: map[string]any{"key": key},
		Cause:   cause,
	}
}

// NewMalformedResponse creates an error for a source body that matches no known shape.
func NewMalformedResponse(location, reason string) *VersoError {
	return &VersoError{
		Code:    ErrMalformedResponse,
		Status:  502,
		Message: fmt.Sprintf("malformed response from %s: %s", location, reason),
		Details: map[string]any{"location": location, "reason": reason},
	}
}

// NewUnavailable creates a 503 error for a source that could not be reached.
func NewUnavailable(location string, cause error) *VersoError {
	msg := fmt.Sprintf("source unavailable: %s", location)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &VersoError{
		Code:    ErrUnavailable,
		Status:  503,
		Message: msg,
		Details: map[string]any{"location": location},
		Cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *VersoError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &VersoError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		Cause:   err,
	}
}

// Is checks if err (or anything it wraps) is a VersoError with the given code.
func Is(err error, code ErrorCode) bool {
	var vErr *VersoError
	if stderrors.As(err, &vErr) {
		return vErr.Code == code
	}
	return false
}

// CodeOf returns the code of a VersoError, or ErrInternal for any other error.
func CodeOf(err error) ErrorCode {
	var vErr *VersoError
	if stderrors.As(err, &vErr) {
		return vErr.Code
	}
	return ErrInternal
}
