// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/ezrec/gemini/display"
	"github.com/ezrec/gemini/emulator"
	"github.com/ezrec/gemini/monitor"
	"github.com/ezrec/gemini/score"
	"github.com/ezrec/gemini/translate"
)

// Config is the command line configuration.
type Config struct {
	Width   int    // Framebuffer width.
	Height  int    // Framebuffer height.
	Compile string // Assembly source to load.
	Input   string // Tape input file, "-" for stdin.
	Raw     bool   // Feed tape bytes verbatim, without key decoding.
	Budget  int    // Instruction budget for a batch run.
	Monitor bool   // Start the interactive monitor.
	Color   string // auto, always or never.
	Game    string // High score table entry.
	Verbose bool
}

func (conf *Config) useColor() bool {
	switch conf.Color {
	case "always":
		return true
	case "never":
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	var conf Config

	flag.IntVar(&conf.Width, "w", emulator.FB_WIDTH, "Framebuffer width")
	flag.IntVar(&conf.Height, "h", emulator.FB_HEIGHT, "Framebuffer height")
	flag.StringVar(&conf.Compile, "c", "", ".asm file to assemble and load")
	flag.StringVar(&conf.Input, "i", "", "Tape input ('-' for stdin)")
	flag.BoolVar(&conf.Raw, "raw", false, "Tape input is raw bytes, not keys")
	flag.IntVar(&conf.Budget, "n", emulator.STEP_BUDGET, "Instruction budget")
	flag.BoolVar(&conf.Monitor, "m", false, "Interactive monitor")
	flag.StringVar(&conf.Color, "color", "auto", "Color output: auto, always, never")
	flag.StringVar(&conf.Game, "game", "", "Game name for the high score table")
	flag.BoolVar(&conf.Verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu, err := emulator.NewEmulator(conf.Width, conf.Height)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Verbose = conf.Verbose

	if len(conf.Compile) != 0 {
		inf, err := os.Open(conf.Compile)
		if err != nil {
			log.Fatalf("%v: %v", conf.Compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", conf.Compile, err)
		}
	}

	switch conf.Input {
	case "":
	case "-":
		emu.Tape.Input = os.Stdin
	default:
		inf, err := os.Open(conf.Input)
		if err != nil {
			log.Fatalf("%v: %v", conf.Input, err)
		}
		defer inf.Close()
		emu.Tape.Input = inf
	}
	emu.Tape.Raw = conf.Raw

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	var table *score.Table
	if len(conf.Game) != 0 {
		table, err = score.Open()
		if err != nil && conf.Verbose {
			log.Printf("score: %v", err)
		}
		table.Verbose = conf.Verbose
		table.Sync(conf.Game, emu.Cpu)
	}

	color := conf.useColor()

	if conf.Monitor {
		sh := monitor.NewShell(emu, os.Stdout, color)
		err = sh.Interact()
		if err != nil {
			log.Fatal(err)
		}
		saveScore(table, conf.Game, emu)
		return
	}

	_, err = emu.Run(conf.Budget)
	info := translate.From("HALTED after %d instructions", emu.Ticks())
	if errors.Is(err, emulator.ErrBudget) {
		info = translate.From("STOPPED after %d instructions", emu.Ticks())
		err = nil
	}
	if err != nil {
		log.Fatal(err)
	}

	title := "GEMINI-1"
	if len(conf.Game) != 0 {
		title = conf.Game
	}

	r := &display.Renderer{Out: os.Stdout, Color: color}
	err = r.Render(emu.Cpu, title, false, info)
	if err != nil {
		log.Fatal(err)
	}

	saveScore(table, conf.Game, emu)
}

// saveScore records the final score of a session in the high score table.
func saveScore(table *score.Table, game string, emu *emulator.Emulator) {
	if table == nil || table.Folder == nil {
		return
	}

	_, err := table.Update(game, int(emu.Cpu.Score()))
	if err != nil {
		log.Printf("score: %v", err)
	}
}
