package core

import (
	"errors"
)

// ErrNotImplemented marks a feature whose entry point exists but whose behavior is still pending
var ErrNotImplemented = errors.New("not implemented")

// ErrMalformedPayload is returned when an incoming request body cannot be decoded
var ErrMalformedPayload = errors.New("malformed payload")

// IsNotImplementedError checks if an error marks a pending feature
func IsNotImplementedError(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}
