package usecase

import "errors"

var (
	// ErrInvalidInput marks client input errors such as text that is too short.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when a requested analysis does not exist.
	ErrNotFound = errors.New("analysis not found")

	// ErrScoringFailed marks a failure of the scorer itself, e.g. a model
	// backend timing out. It is never reported as a low-risk result.
	ErrScoringFailed = errors.New("scoring failed")
)
