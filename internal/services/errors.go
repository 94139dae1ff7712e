package services

import "errors"

var (
	// ErrNotFound is a lookup miss, distinct from a backend failure so
	// handlers can answer 404 instead of 500.
	ErrNotFound = errors.New("not found")

	// ErrValidation rejects user-correctable input before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrGrading aborts scoring when a stored answer cannot be decrypted.
	// No partial credit is ever assigned past this point.
	ErrGrading = errors.New("grading failed")
)
