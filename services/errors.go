package services

import "errors"

// Failure taxonomy shared by all services. Callers classify with errors.Is
// and map to HTTP codes in the controllers; everything unmatched is an
// internal error. Validation and conflict failures are detected before any
// mutation, so the store is untouched when they surface.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
