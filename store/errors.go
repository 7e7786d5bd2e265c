package store

import "errors"

var (
	// ErrUnknownDriver is returned when configuration names a driver that
	// is neither sqlite nor postgres.
	ErrUnknownDriver = errors.New("store: unknown driver")

	// ErrInvalidConfig is returned when required connection parameters
	// are missing.
	ErrInvalidConfig = errors.New("store: invalid configuration")
)
