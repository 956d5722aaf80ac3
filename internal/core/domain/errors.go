package domain

import "errors"

var (
	// ErrUnauthorized means no credential was presented.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden means a credential was presented but is not acceptable.
	ErrForbidden = errors.New("access forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrBadInput marks a request whose shape is wrong (e.g. categories is not a list).
	ErrBadInput = errors.New("invalid data format")
	// ErrStoreFailure wraps persistence read/write/parse errors.
	ErrStoreFailure = errors.New("store failure")
)
