package io

import (
	"bufio"
	"io"
)

// Tape reads input port samples from a byte stream, one hex digit per
// sample. Whitespace between digits is skipped, so an input script can be
// laid out one sample per line. Running the program past the end of the
// tape fails with ErrTapeEmpty.
type Tape struct {
	Input io.Reader

	reader *bufio.Reader
}

var _ Port = (*Tape)(nil)

// Rewind is not possible on a tape.
func (tp *Tape) Rewind() {
}

func (tp *Tape) Sample() (value uint8, err error) {
	if tp.reader == nil {
		tp.reader = bufio.NewReader(tp.Input)
	}

	for {
		var c byte
		c, err = tp.reader.ReadByte()
		if err != nil {
			err = ErrTapeEmpty
			return
		}

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c >= '0' && c <= '9':
			value = c - '0'
		case c >= 'a' && c <= 'f':
			value = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			value = c - 'A' + 10
		default:
			err = ErrTapeDigit(c)
		}
		return
	}
}
