// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal        = errors.New("internal error")
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// Registration validation errors, in check order. Uniqueness checks take
	// priority over format and strength checks.
	ErrDuplicateUsername = errors.New("username has already been taken")
	ErrDuplicateEmail    = errors.New("email has already been registered")
	ErrInvalidEmail      = errors.New("invalid email")
	ErrWeakPassword      = errors.New("password must have at least 5 characters")

	// Credential and token errors. Unknown username and wrong password map to
	// the same value so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")

	// Search validation.
	ErrEmptyKeyword = errors.New("keyword is required")

	// Startup configuration errors (fatal, never per-request).
	ErrMissingSecret = errors.New("token signing secret is not configured")
)
