package domain

import (
	"errors"
	"fmt"
)

// Tagged errors for the borrow lifecycle and the stock ledger. The
// delivery layer owns the mapping to HTTP status codes; nothing in the
// core matches on error text.
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrRequestNotFound     = errors.New("borrow request not found")
	ErrInvalidStatus       = errors.New("invalid status value")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrNoOp                = errors.New("request already in target status")
	ErrInsufficientStock   = errors.New("insufficient stock available")
	ErrMissingReturnDate   = errors.New("actual return date is required")
	ErrConstraintViolation = errors.New("stock quantity constraint violated")
)

// StorageError wraps an underlying database failure. It is surfaced
// as-is to the caller and never retried by the core; only a transient
// lock timeout is safely retryable since transitions commit on full
// success only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a storage failure for operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// IsStorageError reports whether err is a wrapped storage failure.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
