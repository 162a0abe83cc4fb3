package service

import "errors"

// Sentinel errors returned by the services. Controllers translate these into
// localized user-facing messages; anything else is treated as a storage
// failure and logged.
var (
	ErrValidation         = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
