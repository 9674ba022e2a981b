package domain

import "errors"

// Operation outcomes the handlers translate into user-facing responses.
// Everything else is an internal persistence failure: logged, surfaced
// as a generic error.
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrSessionExpired     = errors.New("session expired")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("operation is not permitted")
	ErrNoSeats            = errors.New("no available seats")
)
