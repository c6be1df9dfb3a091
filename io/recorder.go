package io

// Recorder keeps the history of output port writes in program order.
type Recorder struct {
	Values []uint8
}

var _ Sink = (*Recorder)(nil)

func (rec *Recorder) Write(value uint8) (err error) {
	rec.Values = append(rec.Values, value)
	return
}

// Last returns the most recent write, if any.
func (rec *Recorder) Last() (value uint8, ok bool) {
	if len(rec.Values) > 0 {
		value = rec.Values[len(rec.Values)-1]
		ok = true
	}

	return
}

// Reset discards the recorded history.
func (rec *Recorder) Reset() {
	rec.Values = nil
}
