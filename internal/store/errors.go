package store

import (
	"errors"
	"log"
)

// ErrNotFound is returned when a requested row does not exist. Callers are
// expected to treat it as absence, not as a storage failure.
var ErrNotFound = errors.New("not found")

// ValidationError rejects malformed input before it reaches the database.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StorageError wraps a database failure. Error() reports only the generic
// message; the underlying cause is logged where the error is raised and
// stays reachable through Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "database error" }

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr logs the real cause and returns the wrapped generic error.
func storageErr(op string, err error) error {
	log.Printf("[store] %s: %v", op, err)
	return &StorageError{Op: op, Err: err}
}
