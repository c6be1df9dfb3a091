package io

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var (
	// Port errors
	ErrTapeEmpty = errors.New(f("tape empty"))
)

// ErrInputRange indicates an input supplier violated its 4-bit contract.
type ErrInputRange uint8

func (err ErrInputRange) Error() string {
	return f("input %d exceeds 4 bits", uint8(err))
}

// ErrTapeDigit indicates a tape byte that is not a hex digit.
type ErrTapeDigit byte

func (err ErrTapeDigit) Error() string {
	return f("'%c' is not a hex digit", byte(err))
}
