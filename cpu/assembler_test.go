package cpu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal(fmt.Sprintf("%v", ROM_SIZE), asm.Equate["ROM_SIZE"])
	assert.Equal(fmt.Sprintf("%#v", WORD_MASK), asm.Equate["WORD_MASK"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerProgram(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"start:",
		"mov a, 0b0001 ; load one",
		"add a, 1",
		"mov b, a",
		"out b",
		"jmp start",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{2, 0, []string{"mov", "a", "0b0001"}, 0b0011_0001, ""},
		{3, 1, []string{"add", "a", "1"}, 0b0000_0001, ""},
		{4, 2, []string{"mov", "b", "a"}, 0b0100_0000, ""},
		{5, 3, []string{"out", "b"}, 0b1001_0000, ""},
		{6, 4, []string{"jmp", "start"}, 0b1111_0000, "start"},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerLabelForward(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"jnc done",
		"out 1",
		"done: halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{1, 0, []string{"jnc", "done"}, 0b1110_0010, "done"},
		{2, 1, []string{"out", "1"}, 0b1011_0001, ""},
		{3, 2, []string{"halt"}, 0b1111_0010, ""},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerEquate(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".equ ONE 1",
		"mov a ONE",
		"add a, $(ONE + 2)",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Opcode{
		{2, 0, []string{"mov", "a", "1"}, 0b0011_0001, ""},
		{3, 1, []string{"add", "a", "0x3"}, 0b0000_0011, ""},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LIMIT", "12")

	prog, err := asm.Parse(strings.NewReader("mov a LIMIT"))
	assert.NoError(err)
	assert.Equal(Code(0b0011_1100), prog.Opcodes[0].Code)
}

func TestAssemblerMacro(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		".macro emit VAL",
		"out VAL",
		".endm",
		"emit 5",
		"emit 7",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(2, len(prog.Opcodes))
	assert.Equal(Code(0b1011_0101), prog.Opcodes[0].Code)
	assert.Equal(Code(0b1011_0111), prog.Opcodes[1].Code)
}

func TestAssemblerRom(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Binary encoding of every mnemonic form.
	program := []string{
		"add a, 1",
		"mov a, b",
		"in a",
		"mov a, 1",
		"mov b, a",
		"add b, 1",
		"in b",
		"mov b, 1",
		"out b",
		"out 1",
		"jnc 1",
		"jmp 1",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	rom, err := prog.Rom()
	assert.NoError(err)

	expected := []Code{
		0b0000_0001,
		0b0001_0000,
		0b0010_0000,
		0b0011_0001,
		0b0100_0000,
		0b0101_0001,
		0b0110_0000,
		0b0111_0001,
		0b1001_0000,
		0b1011_0001,
		0b1110_0001,
		0b1111_0001,
	}

	for n, code := range expected {
		assert.Equal(code, rom[n], program[n])
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program string
		want    error
	}){
		{"unknown", "foo", ErrInstructionInvalid},
		{"bad_register", "mov c, 1", ErrRegisterInvalid},
		{"out_a", "out a", ErrRegisterInvalid},
		{"missing_value", "add a", ErrOpcodeValueMissing},
		{"extra_args", "add a 1 2", ErrOpcodeExtraArgs},
		{"halt_args", "halt 1", ErrOpcodeExtraArgs},
		{"equ_syntax", ".equ ONE", ErrEquateSyntax},
		{"equ_duplicate", ".equ ONE 1\n.equ ONE 2", ErrEquateDuplicate},
		{"label_duplicate", "x: out 1\nx: out 2", ErrLabelDuplicate},
		{"endm_lonely", ".endm", ErrMacroLonelyEndm},
		{"macro_lonely", ".macro broken", ErrMacroLonely},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.program))
		assert.ErrorIs(err, entry.want, entry.name)
	}

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("mov a, 16"))
	var evr ErrValueRange
	assert.ErrorAs(err, &evr)

	asm = &Assembler{}
	_, err = asm.Parse(strings.NewReader("jmp nowhere"))
	var elm ErrLabelMissing
	assert.ErrorAs(err, &elm)
	assert.Equal("nowhere", string(elm))

	asm = &Assembler{}
	_, err = asm.Parse(strings.NewReader("mov a, bogus"))
	var epn ErrParseNumber
	assert.ErrorAs(err, &epn)

	// Syntax errors carry their source location.
	asm = &Assembler{}
	_, err = asm.Parse(strings.NewReader("out 1\nfoo"))
	var es *ErrSyntax
	assert.ErrorAs(err, &es)
	assert.Equal(2, es.LineNo)
	assert.Equal("foo", es.Line)
}
