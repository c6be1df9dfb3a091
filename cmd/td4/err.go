package main

import (
	"errors"

	"github.com/ezrec/td4/translate"
)

var f = translate.From

var ErrInterrupted = errors.New(f("interrupted"))
