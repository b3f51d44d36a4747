package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrForbidden         = errors.New("not allowed for this user")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("booking is no longer pending")
	ErrSelfBooking       = errors.New("cannot book your own vehicle")
	ErrSelfChat          = errors.New("cannot open a chat with yourself")
	ErrEmailTaken        = errors.New("email already registered")
	ErrBadCredentials    = errors.New("invalid email or password")
)
