package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the typed failure every service operation returns. Callers branch
// on the kind predicates below instead of matching message text.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatusCode satisfies httpx.HTTPStatusCoder so transient failures are
// recognized as retryable.
func (e *Error) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.Status
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// NotFound: a referenced entity (author/book/member/loan) does not exist.
func NotFound(code string, format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, code, fmt.Errorf(format, args...))
}

// Conflict: an invariant would be violated (double loan, delete with
// dependents, duplicate email/name, already returned).
func Conflict(code string, format string, args ...interface{}) *Error {
	return New(http.StatusConflict, code, fmt.Errorf(format, args...))
}

// Invalid: malformed input, rejected before any store access.
func Invalid(code string, format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, code, fmt.Errorf(format, args...))
}

// Unavailable: the store timed out or is unreachable; safe to retry.
func Unavailable(code string, err error) *Error {
	return New(http.StatusServiceUnavailable, code, err)
}

func statusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}

func IsNotFound(err error) bool  { return statusOf(err) == http.StatusNotFound }
func IsConflict(err error) bool  { return statusOf(err) == http.StatusConflict }
func IsInvalid(err error) bool   { return statusOf(err) == http.StatusBadRequest }
func IsTransient(err error) bool { return statusOf(err) == http.StatusServiceUnavailable }

// StatusFor maps any error to the HTTP status the transport layer should
// answer with. Untyped errors are treated as internal failures.
func StatusFor(err error) int {
	if s := statusOf(err); s != 0 {
		return s
	}
	return http.StatusInternalServerError
}

// CodeFor returns the machine-readable code, or a generic one for untyped
// errors.
func CodeFor(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Code != "" {
		return ae.Code
	}
	return "internal_error"
}
