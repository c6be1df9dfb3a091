package io

// Switches models a bank of four DIP switches: every sample returns the
// same fixed value.
type Switches struct {
	Value uint8
}

var _ Port = (*Switches)(nil)

func (sw *Switches) Rewind() {}

func (sw *Switches) Sample() (value uint8, err error) {
	value = sw.Value
	return
}
