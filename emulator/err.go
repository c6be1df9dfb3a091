package emulator

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

// ErrSteps indicates the caller's step budget was exhausted before the
// program halted.
var ErrSteps = errors.New(f("step budget exhausted"))

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Addr   uint8
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo != 0 {
		return f("pc %d line %d %v", err.Addr, err.LineNo, err.Err)
	}
	return f("pc %d %v", err.Addr, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
