package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	// ErrNotFound indicates a requested entity does not exist in the snapshot or store.
	ErrNotFound = errors.New("not found")

	// ErrStorage indicates the persistent store failed to read or durably commit a write.
	ErrStorage = errors.New("storage unavailable")

	// ErrInitialization indicates the startup load from the persistent store failed.
	// The coordinator still comes up with an empty, usable snapshot.
	ErrInitialization = errors.New("initialization failed")

	// ErrValidation indicates invalid input at an API boundary.
	// Guard rejections inside the coordinator (empty collection name, self-drop,
	// duplicate membership, unknown target) are NOT errors - they are silent
	// no-ops and never surface through this sentinel.
	ErrValidation = errors.New("validation failed")
)

// StorageError carries detail about a failed store operation.
// It matches ErrStorage under errors.Is().
type StorageError struct {
	Table string // table the operation targeted
	Op    string // "put" or "getAll"
	Err   error  // underlying driver error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap exposes the underlying driver error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is() to match against ErrStorage
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
