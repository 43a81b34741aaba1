package storage

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrInvalidKey       = errors.New("invalid dataset key")
	ErrPermissionDenied = errors.New("permission denied")
	// ErrIncompleteRead means the dataset changed size or mtime while it was
	// being read, which happens when a deploy rewrites the file in place.
	ErrIncompleteRead = errors.New("dataset changed while reading")
)

// ReadError records which operation on which dataset failed. Transient
// errors are worth reading again; everything else is final.
type ReadError struct {
	Op        string
	Key       string
	Err       error
	Transient bool
}

func (e *ReadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("dataset %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("dataset %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func permanentError(op, key string, err error) *ReadError {
	return &ReadError{Op: op, Key: key, Err: err}
}

func transientError(op, key string, err error) *ReadError {
	return &ReadError{Op: op, Key: key, Err: err, Transient: true}
}

// IsNotFound reports whether err means the dataset does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDatasetNotFound)
}

// IsTransient reports whether reading the dataset again may succeed.
// A short or torn read is always transient, whichever backend produced it.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIncompleteRead) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var readErr *ReadError
	return errors.As(err, &readErr) && readErr.Transient
}
