// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/io"
)

// Emulator state. CPU + ROM + port collaborators.
//
// A single run owns its CPU state exclusively; execution is strictly
// synchronous, one instruction completing before the next begins.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.
	Rom      cpu.Rom      // ROM image executed by the run.

	Input  io.Port // Input port supplier, sampled on IN instructions.
	Output io.Sink // Output port sink, written on OUT instructions.

	MaxSteps int // If > 0, Tick fails with ErrSteps past this many ticks.
}

// NewEmulator creates a new emulator with a fixed-zero input port and a
// recording output sink.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     &cpu.Cpu{},
		Program: &cpu.Program{},
		Input:   &io.Switches{},
		Output:  &io.Recorder{},
	}

	return
}

// Reset loads the ROM image from the program listing, if one is attached,
// and resets the CPU and input port to their initial state.
func (emu *Emulator) Reset() (err error) {
	if emu.Program != nil && len(emu.Program.Opcodes) > 0 {
		emu.Rom, err = emu.Program.Rom()
		if err != nil {
			return
		}
	}

	emu.Cpu.Reset()
	emu.Input.Rewind()

	return
}

// Ticks returns the instruction count since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number for the opcode at the given
// address, or 0 when no listing is attached.
func (emu *Emulator) LineNo(pc uint8) int {
	if emu.Program == nil {
		return 0
	}

	op := emu.Program.Debug(pc)
	if op == nil {
		return 0
	}

	return op.LineNo
}

// Tick executes a single instruction cycle: fetch, decode, halt check,
// input sampling, execute, and output delivery.
//
// Halt is the TD4 self-loop idiom, detected after decode rather than kept
// as CPU state: a jmp targeting its own address always halts, and a jnc
// targeting its own address halts when the carry is clear, since nothing
// in that loop can ever set it. Tick returns done without executing the
// halting jump.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Addr: addr, LineNo: emu.LineNo(addr), Err: err}
		}
	}()

	if emu.MaxSteps > 0 && emu.Cpu.Ticks >= emu.MaxSteps {
		err = ErrSteps
		return
	}

	code := emu.Rom.Fetch(addr)
	op, err := code.Op()
	if err != nil {
		return
	}

	switch op {
	case cpu.OP_JMP:
		if code.Im() == addr {
			done = true
			return
		}
	case cpu.OP_JNC:
		if code.Im() == addr && !emu.Cpu.Carry {
			done = true
			return
		}
	case cpu.OP_IN_A, cpu.OP_IN_B:
		var sample uint8
		sample, err = emu.Input.Sample()
		if err != nil {
			return
		}
		if sample > cpu.WORD_MASK {
			// 4-bit contract violation: fail fast, never truncate.
			err = io.ErrInputRange(sample)
			return
		}
		emu.Cpu.In = sample
	}

	err = emu.Cpu.Execute(code)
	if err != nil {
		return
	}

	switch op {
	case cpu.OP_OUT_B, cpu.OP_OUT_IM:
		err = emu.Output.Write(emu.Cpu.Out)
	}

	return
}

// Run executes instructions until the program halts. Decode failures and
// port errors stop the run immediately.
func (emu *Emulator) Run() (err error) {
	var done bool
	for !done {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
