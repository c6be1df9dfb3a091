package cpu

import (
	"fmt"
	"log"
)

const (
	ROM_SIZE  = 16  // Words of program memory.
	WORD_MASK = 0xf // Mask of the 4-bit data width.
)

// Cpu is the simulation context for a single TD4 processor.
//
// All 4-bit fields (A, B, Pc, In, Out) are held masked to [0,15]. The
// state is an explicit struct so that multiple independent instances can
// run side by side.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A     uint8 // General register A.
	B     uint8 // General register B.
	Carry bool  // Carry flag, written only by add.
	Pc    uint8 // Program counter.

	In  uint8 // Current input port sample.
	Out uint8 // Last value written to the output port.

	Ticks int // Executed instruction counter.
}

// Reset the CPU state to power-on values.
func (cpu *Cpu) Reset() {
	cpu.A = 0
	cpu.B = 0
	cpu.Carry = false
	cpu.Pc = 0
	cpu.In = 0
	cpu.Out = 0
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"a", "b", "cy", "pc", "in", "out"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "a":
			strval = fmt.Sprintf("%d (%04b)", cpu.A, cpu.A)
		case "b":
			strval = fmt.Sprintf("%d (%04b)", cpu.B, cpu.B)
		case "cy":
			strval = "0"
			if cpu.Carry {
				strval = "1"
			}
		case "pc":
			strval = fmt.Sprintf("%d", cpu.Pc)
		case "in":
			strval = fmt.Sprintf("%d (%04b)", cpu.In, cpu.In)
		case "out":
			strval = fmt.Sprintf("%d (%04b)", cpu.Out, cpu.Out)
		}
		text += fmt.Sprintf("% 4s: %v\n", reg, strval)
	}

	return
}

// Execute applies a single instruction to the CPU state.
//
// Add overwrites the carry flag on every execution, set on a sum past 15
// and cleared otherwise. All other operations leave the carry untouched.
// Every non-jump instruction advances the program counter by one, modulo
// the ROM size. A decode failure leaves the state unchanged.
func (cpu *Cpu) Execute(code Code) (err error) {
	op, err := code.Op()
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%x: %v", cpu.Pc, code)
	}

	im := code.Im()
	next := (cpu.Pc + 1) & WORD_MASK

	switch op {
	case OP_ADD_A:
		sum := cpu.A + im
		cpu.Carry = sum > WORD_MASK
		cpu.A = sum & WORD_MASK
	case OP_ADD_B:
		sum := cpu.B + im
		cpu.Carry = sum > WORD_MASK
		cpu.B = sum & WORD_MASK
	case OP_MOV_A_B:
		cpu.A = cpu.B
	case OP_MOV_B_A:
		cpu.B = cpu.A
	case OP_MOV_A_IM:
		cpu.A = im
	case OP_MOV_B_IM:
		cpu.B = im
	case OP_IN_A:
		cpu.A = cpu.In & WORD_MASK
	case OP_IN_B:
		cpu.B = cpu.In & WORD_MASK
	case OP_OUT_B:
		cpu.Out = cpu.B
	case OP_OUT_IM:
		cpu.Out = im
	case OP_JMP:
		next = im
	case OP_JNC:
		if !cpu.Carry {
			next = im
		}
	}

	cpu.Pc = next
	cpu.Ticks += 1

	return
}
