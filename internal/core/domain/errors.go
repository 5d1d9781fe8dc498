package domain

import "errors"

var (
	// ErrNotFound reports a missing row.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports an unprovisioned backing store, e.g. an
	// analytics table that was never created. Callers degrade to empty
	// values instead of failing the whole operation.
	ErrUnavailable = errors.New("data source unavailable")

	// ErrAuthRequired reports an action that needs a signed-in user.
	ErrAuthRequired = errors.New("authentication required")

	// ErrInvalidProduct reports admin input that failed validation.
	ErrInvalidProduct = errors.New("invalid product")
)
