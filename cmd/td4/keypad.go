package main

import (
	"os"

	"golang.org/x/term"

	"github.com/ezrec/td4/io"
)

// Keypad samples the input port from single keystrokes: the terminal is
// put in raw mode and the next hex digit key pressed becomes the sample.
// Non-digit keys are ignored; Ctrl-C aborts the run.
type Keypad struct {
	Tty *os.File
}

var _ io.Port = (*Keypad)(nil)

func (kp *Keypad) Rewind() {}

func (kp *Keypad) Sample() (value uint8, err error) {
	fd := int(kp.Tty.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return
	}
	defer term.Restore(fd, state)

	var one [1]byte
	for {
		_, err = kp.Tty.Read(one[:])
		if err != nil {
			return
		}

		c := one[0]
		switch {
		case c == 0x03: // Ctrl-C
			err = ErrInterrupted
			return
		case c >= '0' && c <= '9':
			value = c - '0'
			return
		case c >= 'a' && c <= 'f':
			value = c - 'a' + 10
			return
		case c >= 'A' && c <= 'F':
			value = c - 'A' + 10
			return
		}
	}
}
