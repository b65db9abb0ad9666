package sentry

import (
	"errors"
	"fmt"
)

// ErrNilConfig indicates that NewAdapter was called without a Config.
var ErrNilConfig = errors.New("sentry config must not be nil")

// PanicError is returned by Context.Measure and Context.Transaction when the measured body panics.
type PanicError struct {
	Value interface{}
	Stack []byte
}

var _ error = (*PanicError)(nil)

// Error returns a textual representation of the recovered value.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the recovered value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
