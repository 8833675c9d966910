package services

import "errors"

// Sentinel errors for operations whose result type cannot carry absence.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
