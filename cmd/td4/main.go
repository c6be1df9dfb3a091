// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/td4/cpu"
	"github.com/ezrec/td4/emulator"
	"github.com/ezrec/td4/io"
)

func main() {
	var compile string
	var binary string
	var input uint
	var tape string
	var keypad bool
	var steps int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".td4 assembly file to compile")
	flag.StringVar(&binary, "b", "", "raw 16 byte rom image to execute")
	flag.UintVar(&input, "i", 0, "Fixed input port value (0-15)")
	flag.StringVar(&tape, "t", "", "Input tape of hex digit samples ('-' for stdin)")
	flag.BoolVar(&keypad, "k", false, "Read input port samples from the keyboard")
	flag.IntVar(&steps, "n", 0, "Step budget (0 for unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxSteps = steps

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog
	case len(binary) != 0:
		image, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		codes := make([]cpu.Code, len(image))
		for n, data := range image {
			codes[n] = cpu.Code(data)
		}
		emu.Program = nil
		emu.Rom, err = cpu.MakeRom(codes)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	default:
		log.Fatalf("%v: Either -c or -b is required", os.Args[0])
	}

	switch {
	case keypad:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			log.Fatalf("%v: -k requires a terminal on stdin", os.Args[0])
		}
		emu.Input = &Keypad{Tty: os.Stdin}
	case tape == "-":
		emu.Input = &io.Tape{Input: os.Stdin}
	case len(tape) != 0:
		inf, err := os.Open(tape)
		if err != nil {
			log.Fatalf("%v: %v", tape, err)
		}
		defer inf.Close()
		emu.Input = &io.Tape{Input: inf}
	default:
		if input > cpu.WORD_MASK {
			log.Fatalf("%v: -i %v exceeds 4 bits", os.Args[0], input)
		}
		emu.Input = &io.Switches{Value: uint8(input)}
	}

	emu.Output = &io.Printer{Output: os.Stdout}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
