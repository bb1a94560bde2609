package service

import "errors"

var (
	// ErrInvalidCredentials is returned when a login fails. It covers both
	// unknown usernames and wrong passwords so the response does not leak
	// which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned when no account owns the presented api
	// token.
	ErrInvalidToken = errors.New("invalid api token")
)
