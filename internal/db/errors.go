package db

import "errors"

// Sentinel errors for schema operations.
var (
	ErrClassNotFound = errors.New("db: class not found")
	ErrClassExists   = errors.New("db: class already exists")
)

// Op constants name schema operations for error context.
const (
	OpReady       = "READY"
	OpClassExists = "CLASS.EXISTS"
	OpGetClass    = "CLASS.GET"
	OpCreateClass = "CLASS.CREATE"
	OpDeleteClass = "CLASS.DELETE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op    string
	Class string
	Err   error
}

func (e *Error) Error() string {
	if e.Class == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Class + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }
