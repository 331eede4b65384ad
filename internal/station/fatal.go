package station

import (
	"errors"
	"fmt"
)

// FatalError is the only error category that stops the cycle. Everything
// else is recorded on the outcome and the sequence keeps going.
type FatalError struct {
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %s: %s", e.Op, e.Err.Error())
}

func (e *FatalError) Unwrap() error { return e.Err }

func Fatal(op string, err error) error {
	return &FatalError{Op: op, Err: err}
}

func IsFatal(err error) bool {
	var f *FatalError

	return errors.As(err, &f)
}
