package cpu

// Rom is the fixed 16-word program memory, immutable once loaded.
type Rom [ROM_SIZE]Code

// Fetch returns the instruction word at the given address. The address is
// masked to the ROM size, so out-of-range fetches are structurally
// impossible.
func (rom Rom) Fetch(pc uint8) Code {
	return rom[pc&WORD_MASK]
}

// MakeRom builds a ROM image from an assembled or literal instruction
// sequence. Programs longer than the ROM fail with ErrProgramSize. Each
// unused word n is filled with a jump to its own address, so control flow
// that strays past the program halts instead of running junk.
func MakeRom(codes []Code) (rom Rom, err error) {
	if len(codes) > ROM_SIZE {
		err = ErrProgramSize(len(codes))
		return
	}

	copy(rom[:], codes)
	for n := len(codes); n < ROM_SIZE; n++ {
		rom[n] = MakeCode(OP_JMP, uint8(n))
	}

	return
}
