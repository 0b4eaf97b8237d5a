package storage

import (
	"errors"
	"fmt"
)

var (
	ErrAuthFailed       = errors.New("authentication failed")
	ErrConnFailed       = errors.New("connection failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrTimeout          = errors.New("operation timeout")
	ErrBucketExists     = errors.New("bucket already exists")
)

// IsNotFound reports whether a failed call only affects the item it targeted.
// Uploads keep going after such errors and stop on anything else.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCritical returns true if error means no further call can succeed
func IsCritical(err error) bool {
	return errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrConnFailed)
}

// WrapError adds context to an error. When kind is not nil it is kept in the
// chain next to err so callers can match it with errors.Is.
func WrapError(store, operation string, kind, err error) error {
	if kind == nil {
		return fmt.Errorf("%s (%s): %w", operation, store, err)
	}
	return fmt.Errorf("%s (%s): %w: %w", operation, store, kind, err)
}
