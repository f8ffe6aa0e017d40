package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization.
var (
	ErrMissingToken       = errors.New("token is missing")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpired            = errors.New("token expired")
	ErrInvalidSignature   = errors.New("token signature invalid")
	ErrMalformed          = errors.New("token malformed")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// Data and storage.
var (
	ErrInvalidValue       = errors.New("invalid value")
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidOwner       = errors.New("owner must be an existing store owner")
)

// ValueError is a rejected input. Its message names the offending value
// and nothing else, so it can be returned to clients as is, however deep
// the call chain that wrapped it.
type ValueError struct {
	Reason string
}

// Invalid builds a ValueError that matches ErrInvalidValue.
func Invalid(format string, args ...any) error {
	return &ValueError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ValueError) Error() string {
	return ErrInvalidValue.Error() + ": " + e.Reason
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }
