package persistence

import (
	"errors"
	"fmt"
)

// Not-found sentinels shared by every store implementation.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrMonthNotFound   = errors.New("archive month not found")
	ErrRenewalNotFound = errors.New("renewal not found")
)

// StoreError wraps a transport-level database fault. Services surface it
// unchanged so handlers can distinguish infrastructure failures from domain
// errors.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStore annotates a database error with the failing operation. Sentinel
// errors pass through untouched so errors.Is checks keep working.
func WrapStore(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrMonthNotFound) || errors.Is(err, ErrRenewalNotFound) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err carries a wrapped transport fault.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
