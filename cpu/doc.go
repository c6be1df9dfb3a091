// Package cpu implements the processor and assembler for the TD4 system.
//
// The TD4 is a 4-bit processor with two general registers (A and B), a
// carry flag, a 4-bit program counter, one input port, and one output port.
// Programs live in a fixed 16-word ROM of 8-bit instructions: the high
// nibble selects one of eleven operations, the low nibble is an immediate
// value or jump target.
//
// The assembler provides the TD4 mnemonic assembly language, supporting
// macros, labels, equates, and compile-time expression evaluation.
package cpu
