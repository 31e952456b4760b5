package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// to HTTP status codes with errors.Is; anything else is an internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyExists      = errors.New("record already exists")
	ErrAlreadyActive      = errors.New("record is already active")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrTokenNotExpired    = errors.New("access token has not expired yet")
)
