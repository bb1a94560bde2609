package store

import "errors"

// Domain errors returned by the entity stores and relationship manager.
// Callers distinguish these with errors.Is.
var (
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")
	ErrInvalidPrice  = errors.New("price must not be negative")
	ErrSelfFollow    = errors.New("a user cannot follow themselves")
)
