package domain

import "errors"

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when credentials do not check out: unknown
// email at login, wrong password, or a wrong current password on a password
// change. Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when the requested resource exists but belongs to
// a different user. Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. signing up with an already-registered email.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidToken is returned by token verification for malformed, tampered,
// or expired tokens. The auth middleware maps this to HTTP 401.
var ErrInvalidToken = errors.New("invalid token")
