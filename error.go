package rxcore

import (
	"errors"
	"fmt"
)

var ErrLoopClosed = errors.New("rxcore: loop closed")

// RuntimeErr carries a failure raised by user code (a panic or an error
// returned from a callback) through a notification chain.
type RuntimeErr struct {
	err error
}

func RuntimeError(v interface{}) error {
	switch e := v.(type) {
	case nil:
		return nil
	case RuntimeErr:
		return e
	case error:
		return RuntimeErr{e}
	}
	return RuntimeErr{fmt.Errorf("runtime-error: %v", v)}
}

func (e RuntimeErr) Error() string {
	return e.err.Error()
}

func (e RuntimeErr) Previous() error {
	return e.err
}

func (e RuntimeErr) Unwrap() error {
	return e.err
}

// Recover runs fn and returns a recovered panic as RuntimeErr.
func Recover(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = RuntimeError(r)
		}
	}()
	fn()
	return nil
}
