package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and
// generated instruction.
type Opcode struct {
	LineNo    int
	Addr      int
	Words     []string
	Code      Code
	LinkLabel string
}

// Program is an assembled listing, one Opcode per ROM word.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the assembled opcode at the given address, or nil if the
// address is past the program.
func (prog *Program) Debug(pc uint8) (op *Opcode) {
	for n := range prog.Opcodes {
		if prog.Opcodes[n].Addr == int(pc) {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Codes iterates the assembled instruction words in address order.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(addr uint8, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint8(op.Addr), op.Code) {
				return
			}
		}
	}
}

// Rom builds the 16-word ROM image for the program.
func (prog *Program) Rom() (rom Rom, err error) {
	codes := make([]Code, 0, len(prog.Opcodes))
	for _, op := range prog.Opcodes {
		codes = append(codes, op.Code)
	}

	return MakeRom(codes)
}
