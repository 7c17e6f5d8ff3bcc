// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a GEMINI-1 CPU: it loads assembled programs,
// feeds tape input and bounds how many instructions a run may take.
package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/gemini/cpu"
	"github.com/ezrec/gemini/display"
	"github.com/ezrec/gemini/internal"
	gio "github.com/ezrec/gemini/io"
)

const (
	FB_WIDTH    = 16   // Default framebuffer width.
	FB_HEIGHT   = 16   // Default framebuffer height.
	STEP_BUDGET = 1000 // Default instruction budget for a run.
)

var _emulator_defines = map[string]string{
	"STEP_BUDGET": fmt.Sprintf("%v", STEP_BUDGET),
}

// Emulator state. CPU + program + input tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape gio.Tape // Input tape, fed into the pending input register.
}

// NewEmulator creates a new emulator with a width x height framebuffer.
func NewEmulator(width, height int) (emu *Emulator, err error) {
	cp, err := cpu.NewCpu(width, height)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:     cp,
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		display.Defines(),
		gio.Defines(),
	)
}

// Assemble parses assembly source with the emulator defines predefined,
// and makes it the current program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	defines := maps.Collect(emu.Defines())
	for _, name := range internal.SortedKeys(maps.All(defines)) {
		if emu.Verbose {
			log.Printf("emulator: .equ %v %v", name, defines[name])
		}
		asm.Predefine(name, defines[name])
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	return
}

// Reset the emulator state.
// - Resets the CPU registers.
// - Loads the program into memory.
// - Sets the program counter to the program entry point.
// - Rewinds the tape.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	n := emu.Program.Load(emu.Cpu)
	emu.Cpu.Register.PC = emu.Program.Entry()

	emu.Tape.Rewind()

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes, entry %04x", n, emu.Cpu.Register.PC)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// LineNo returns the source line number of the instruction at the program counter.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Register.PC)
	if dbg.Statement == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
// Tape input, if attached, is latched before the instruction runs.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted() {
		done = true
		return
	}

	if emu.Tape.Input != nil {
		_, err = emu.Tape.Feed(emu.Cpu)
		if errors.Is(err, io.EOF) {
			err = nil
		}
		if err != nil {
			err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
			return
		}
	}

	emu.Cpu.Step()
	done = emu.Cpu.Halted()

	return
}

// Run ticks until the CPU halts, or budget instructions have executed.
// A budget <= 0 means STEP_BUDGET.
// Returns ErrBudget if the CPU is still running when the budget runs out.
func (emu *Emulator) Run(budget int) (steps int, err error) {
	if budget <= 0 {
		budget = STEP_BUDGET
	}

	start := emu.Cpu.Ticks
	defer func() { steps = emu.Cpu.Ticks - start }()

	var done bool
	for emu.Cpu.Ticks-start < budget {
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = &ErrRuntime{LineNo: emu.LineNo(), Err: ErrBudget}
	return
}
