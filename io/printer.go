package io

import (
	"fmt"
	"io"
)

// Printer writes each output port value as a "Port (B) Out: N" line,
// the format the TD4 monitor prints.
type Printer struct {
	Output io.Writer
}

var _ Sink = (*Printer)(nil)

func (pr *Printer) Write(value uint8) (err error) {
	_, err = fmt.Fprintf(pr.Output, "Port (B) Out: %d\n", value)
	return
}
