package content

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
)

// StoreError reports a failure reaching the document store (network, auth,
// driver). It is never used for absent documents.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Wrap returns err as a *StoreError unless it is nil, already a StoreError,
// or ErrNotFound.
func Wrap(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
