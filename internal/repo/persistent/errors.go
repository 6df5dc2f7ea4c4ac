package persistent

import (
	"errors"
	"fmt"
)

// ErrNotFound means the requested row does not exist or does not belong to
// the requesting user. Surfaced to callers as-is.
var ErrNotFound = errors.New("record not found")

// StorageError wraps a failure of the backing store. Correctness-critical:
// always surfaced to the caller.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err originates from the backing store.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
