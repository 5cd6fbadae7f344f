package services

import "errors"

// Request-terminal error kinds. Handlers map these to fixed status codes
// with generic messages; anything else surfaces as a server error.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInactiveAccount    = errors.New("inactive account")
	ErrConflict           = errors.New("username already registered")
	ErrNotFound           = errors.New("not found")
)
