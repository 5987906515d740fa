// Package common defines shared constants and sentinel errors used across
// the layers of the book-tracker account service. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Account uniqueness violations, mapped from DB constraints.
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")

	// Request-level errors surfaced by the HTTP layer.
	ErrorValidation    = errors.New("validation error")
	ErrMissingToken    = errors.New("refresh token is required")
	ErrPasswordsDiffer = errors.New("passwords don't match")
)
