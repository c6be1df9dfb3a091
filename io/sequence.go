package io

// Sequence supplies input samples from a slice, one per IN instruction.
// Once the slice is exhausted the last value is held, matching a switch
// bank left in its final position. Rewind restarts the sequence.
type Sequence struct {
	Values []uint8

	index int
}

var _ Port = (*Sequence)(nil)

func (sq *Sequence) Rewind() {
	sq.index = 0
}

func (sq *Sequence) Sample() (value uint8, err error) {
	if len(sq.Values) == 0 {
		return
	}

	value = sq.Values[sq.index]
	if sq.index < len(sq.Values)-1 {
		sq.index++
	}

	return
}
