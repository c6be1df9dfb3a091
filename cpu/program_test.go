package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeRom(t *testing.T) {
	assert := assert.New(t)

	codes := []Code{
		MakeCode(OP_MOV_A_IM, 3),
		MakeCode(OP_OUT_B, 0),
	}

	rom, err := MakeRom(codes)
	assert.NoError(err)
	assert.Equal(codes[0], rom[0])
	assert.Equal(codes[1], rom[1])

	// Unused words are filled with self-jumps, so stray control flow
	// halts at whichever word it lands on.
	for n := len(codes); n < ROM_SIZE; n++ {
		assert.Equal(MakeCode(OP_JMP, uint8(n)), rom[n])
	}
}

func TestMakeRomOversize(t *testing.T) {
	assert := assert.New(t)

	codes := make([]Code, ROM_SIZE+1)
	_, err := MakeRom(codes)
	assert.Error(err)

	var ep ErrProgramSize
	assert.ErrorAs(err, &ep)
	assert.Equal(ROM_SIZE+1, int(ep))
}

func TestRomFetch(t *testing.T) {
	assert := assert.New(t)

	var rom Rom
	for n := range rom {
		rom[n] = Code(n)
	}

	for pc := range uint8(64) {
		assert.Equal(rom[pc&WORD_MASK], rom.Fetch(pc))
	}
}

func TestProgram(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Addr: 0, Words: []string{"mov", "a", "3"}, Code: 0b0011_0011},
			{LineNo: 3, Addr: 1, Words: []string{"out", "b"}, Code: 0b1001_0000},
		},
	}

	dbg := prog.Debug(1)
	assert.NotNil(dbg)
	assert.Equal(3, dbg.LineNo)
	assert.Nil(prog.Debug(5))

	var addrs []uint8
	var codes []Code
	for addr, code := range prog.Codes() {
		addrs = append(addrs, addr)
		codes = append(codes, code)
	}
	assert.Equal([]uint8{0, 1}, addrs)
	assert.Equal([]Code{0b0011_0011, 0b1001_0000}, codes)

	rom, err := prog.Rom()
	assert.NoError(err)
	assert.Equal(Code(0b0011_0011), rom[0])
	assert.Equal(Code(0b1001_0000), rom[1])
	assert.Equal(MakeCode(OP_JMP, 2), rom[2])
}
