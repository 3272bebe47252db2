package domain

import "errors"

// Sentinel errors shared across services. Delivery maps each to a distinct
// HTTP status; services wrap infrastructure failures with %w instead.
var (
	// ErrAuthRequired is returned when an operation needs a caller identity
	// and none is present.
	ErrAuthRequired = errors.New("authorization required")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is authenticated but does not
	// own the target entity.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict is returned when a state-transition precondition fails:
	// duplicate registration, duplicate wishlist entry, no seats left.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail is returned on signup with an email already in use.
	ErrDuplicateEmail = errors.New("email already in use")
)
