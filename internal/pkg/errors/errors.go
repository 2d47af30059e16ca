package errors

import "errors"

// Application-wide sentinel errors. Services wrap these with context via
// fmt.Errorf("%w: ..."); handlers match with errors.Is to pick an HTTP status.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for failed authentication (bad token, bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the principal lacks the role or ownership for an action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for malformed or inconsistent input.
	ErrValidation = errors.New("validation failed")

	// ErrExpired is returned when a time-boxed record (verification code) is past its deadline.
	ErrExpired = errors.New("expired")

	// ErrConflict is returned for state conflicts (duplicate attempt creation, duplicate email).
	ErrConflict = errors.New("resource state conflict")
)
