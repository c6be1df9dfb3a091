package cpu

import (
	"fmt"
)

// Op is one of the eleven TD4 operations, identified by the high nibble
// of an instruction word.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD_A    = Op(0b0000) // add a
	OP_MOV_A_B  = Op(0b0001) // mov a, b
	OP_IN_A     = Op(0b0010) // in a
	OP_MOV_A_IM = Op(0b0011) // mov a
	OP_MOV_B_A  = Op(0b0100) // mov b, a
	OP_ADD_B    = Op(0b0101) // add b
	OP_IN_B     = Op(0b0110) // in b
	OP_MOV_B_IM = Op(0b0111) // mov b
	OP_OUT_B    = Op(0b1001) // out b
	OP_OUT_IM   = Op(0b1011) // out
	OP_JNC      = Op(0b1110) // jnc
	OP_JMP      = Op(0b1111) // jmp
)

// HasIm returns true if the operation carries a meaningful immediate in
// the low nibble.
func (op Op) HasIm() bool {
	switch op {
	case OP_ADD_A, OP_ADD_B, OP_MOV_A_IM, OP_MOV_B_IM, OP_OUT_IM, OP_JNC, OP_JMP:
		return true
	}
	return false
}

// Code is a single encoded 8-bit TD4 instruction word.
type Code uint8

// MakeCode encodes an operation and immediate into an instruction word.
// Operations without an immediate field encode a zero low nibble.
func MakeCode(op Op, im uint8) Code {
	if !op.HasIm() {
		im = 0
	}
	return Code((uint8(op) << 4) | (im & WORD_MASK))
}

// Op decodes the operation from the instruction word. The four unused
// high-nibble patterns (1000, 1010, 1100, 1101) fail with ErrOpcode.
func (code Code) Op() (op Op, err error) {
	op = Op(code >> 4)
	switch op {
	case OP_ADD_A, OP_MOV_A_B, OP_IN_A, OP_MOV_A_IM,
		OP_MOV_B_A, OP_ADD_B, OP_IN_B, OP_MOV_B_IM,
		OP_OUT_B, OP_OUT_IM, OP_JNC, OP_JMP:
		// pass
	default:
		err = ErrOpcode(code)
	}

	return
}

// Im returns the immediate field from the instruction word.
func (code Code) Im() uint8 {
	return uint8(code) & WORD_MASK
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op, err := code.Op()
	if err != nil {
		return fmt.Sprintf("db %#08b", uint8(code))
	}

	if !op.HasIm() {
		return op.String()
	}

	switch op {
	case OP_OUT_IM, OP_JNC, OP_JMP:
		out = fmt.Sprintf("%v %d", op, code.Im())
	default:
		out = fmt.Sprintf("%v, %d", op, code.Im())
	}

	return
}
