package domain

import "errors"

var (
	// ErrInvalidConfig signals missing or inconsistent configuration.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidSchema signals an invalid collection definition.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate collection.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized signals rejected database credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnavailable signals that the database could not be reached or is not ready.
	ErrUnavailable = errors.New("database unavailable")
	// ErrProviderCredential signals a rejected embedding provider credential.
	ErrProviderCredential = errors.New("embedding provider credential rejected")
)
