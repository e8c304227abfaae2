// Package domainerrors provides coded errors for the service layer.
//
// Services return these so transports can translate a code into a status
// without string matching. Infrastructure facts (row missing, conflict on
// insert) are expressed with pkg/platform/sentinel and wrapped into a coded
// error at the service boundary.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks input that fails a field-level check. The message
	// names the offending field.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks a request that could not be understood at all
	// (malformed body, missing payload).
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized marks requests with no authenticated actor.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks an authenticated actor lacking permission for the
	// target record.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks an unknown resource id.
	CodeNotFound Code = "not_found"
	// CodeConflict marks an operation that lost to a uniqueness or state rule.
	CodeConflict Code = "conflict"
	// CodeInvariantViolation marks a domain invariant breach detected by a
	// model constructor or transition check.
	CodeInvariantViolation Code = "invariant_violation"
	// CodeRateLimited marks a request rejected by the rate limiter.
	CodeRateLimited Code = "rate_limited"
	// CodeTimeout marks an operation that exceeded its deadline.
	CodeTimeout Code = "timeout"
	// CodeInternal marks failures whose detail must stay in diagnostics and
	// out of the response body.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. It optionally wraps a cause, which is kept
// for diagnostics but never rendered to clients.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal when err is not a
// coded error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the client-safe message of err. Non-coded errors map to a
// generic message so internal detail never leaks.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code onto the HTTP status used by the JSON transport.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeInvariantViolation:
		return http.StatusUnprocessableEntity
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
