package service

import "errors"

var (
	// ErrInvalidCredentials is returned for a failed login or a bad token
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned when registering an existing username
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUnknownAirport is returned when a trip names an airport that is not stored
	ErrUnknownAirport = errors.New("unknown airport")
)
