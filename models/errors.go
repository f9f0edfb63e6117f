package models

import "errors"

// Named failure conditions shared by the stores. Callers match them with
// errors.Is; the HTTP helper maps them to status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidCredential  = errors.New("invalid credential")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
