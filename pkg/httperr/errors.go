package httperr

import (
	"errors"
	"fmt"
)

// Status codes used by the product API
const (
	StatusOK          = 200
	StatusBadRequest  = 400
	StatusNotFound    = 404
	StatusServerError = 500
)

// Kind classifies an Error independently of its numeric code
type Kind string

const (
	KindBadRequest Kind = "bad_request"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

// Error is a business error that carries the HTTP status it maps to
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error // Optional cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an Error for the given status code.
// Codes outside the known set are kept but classified as internal.
func New(statusCode int, message string) *Error {
	return &Error{
		Kind:       kindFor(statusCode),
		StatusCode: statusCode,
		Message:    message,
	}
}

// NotFound creates a 404 error
func NotFound(message string) *Error {
	return New(StatusNotFound, message)
}

// BadRequest creates a 400 error
func BadRequest(message string) *Error {
	return New(StatusBadRequest, message)
}

// Internal creates a 500 error wrapping cause
func Internal(message string, cause error) *Error {
	e := New(StatusServerError, message)
	e.Err = cause
	return e
}

// IsKnownStatus reports whether code belongs to the error enumeration
func IsKnownStatus(code int) bool {
	switch code {
	case StatusBadRequest, StatusNotFound, StatusServerError:
		return true
	}
	return false
}

// StatusOf returns the status code carried by err, if any.
// The second value is false when err carries no recognized status code.
func StatusOf(err error) (int, bool) {
	var httpErr *Error
	if !errors.As(err, &httpErr) {
		return 0, false
	}
	if !IsKnownStatus(httpErr.StatusCode) {
		return 0, false
	}
	return httpErr.StatusCode, true
}

// MessageOf returns the client-facing message for err
func MessageOf(err error) string {
	var httpErr *Error
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

func kindFor(statusCode int) Kind {
	switch statusCode {
	case StatusBadRequest:
		return KindBadRequest
	case StatusNotFound:
		return KindNotFound
	default:
		return KindInternal
	}
}
