// Package io provides input and output port collaborators for the TD4
// emulator. Input ports supply a 4-bit sample each time an IN instruction
// executes; output sinks observe every 4-bit value an OUT instruction
// writes, in program order.
package io

// Port is an input port supplier. Sample is invoked once per executed IN
// instruction and must return a value in [0,15]; out-of-range values are
// a contract violation the engine rejects.
type Port interface {
	// Rewind resets the port to its initial state.
	Rewind()
	// Sample returns the next 4-bit input value.
	Sample() (value uint8, err error)
}

// Sink is an output port consumer, invoked once per executed OUT
// instruction with the new 4-bit output value.
type Sink interface {
	Write(value uint8) error
}

// PortFunc adapts a function to the Port interface.
type PortFunc func() (uint8, error)

func (pf PortFunc) Rewind() {}

func (pf PortFunc) Sample() (value uint8, err error) {
	return pf()
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(value uint8) error

func (sf SinkFunc) Write(value uint8) error {
	return sf(value)
}
