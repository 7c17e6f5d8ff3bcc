// Package monitor implements the GEMINI-1 interactive machine monitor.
//
// The monitor is a line oriented shell over an emulator: it can inspect and
// modify memory and registers, single step or run the CPU, assemble and
// load programs, and show the framebuffer.
package monitor

import (
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/mgutz/ansi"

	"github.com/ezrec/gemini/cpu"
	"github.com/ezrec/gemini/display"
	"github.com/ezrec/gemini/emulator"
	"github.com/ezrec/gemini/internal"
	gio "github.com/ezrec/gemini/io"
	"github.com/ezrec/gemini/translate"
)

const (
	VERSION       = "2.0.0" // Monitor version.
	HISTORY_SHOWN = 20      // Lines shown by HISTORY.
	DISASM_LINES  = 8       // Default DISASM length.
	DEMO_FRAMES   = 10      // Frames drawn by DEMO.
	DEMO_DELAY    = 200 * time.Millisecond
)

// LineReader supplies command lines; *readline.Instance is one.
type LineReader interface {
	Readline() (string, error)
}

type command struct {
	usage string
	help  string
	run   func(sh *Shell, args []string)
}

var _commands map[string]*command

var _command_order = []string{
	"HELP", "STATUS", "MEM", "PEEK", "POKE", "REGS", "VRAM", "RESET", "RUN",
	"STEP", "DISASM", "INPUT", "LOAD", "DUMP", "FILL", "CLEAR", "HISTORY",
	"DEMO", "INFO", "VER", "EXIT",
}

var _command_aliases = []string{"QUIT"}

func init() {
	_commands = map[string]*command{
		"HELP":    {"HELP", "Show this help message", (*Shell).cmdHelp},
		"STATUS":  {"STATUS", "Display CPU status and registers", (*Shell).cmdStatus},
		"MEM":     {"MEM <addr>", "Read memory at address (hex or dec)", (*Shell).cmdPeek},
		"PEEK":    {"PEEK <addr>", "Peek at memory address (alias for MEM)", (*Shell).cmdPeek},
		"POKE":    {"POKE <addr> <val>", "Write value to memory address", (*Shell).cmdPoke},
		"REGS":    {"REGS", "Display all CPU registers", (*Shell).cmdRegs},
		"VRAM":    {"VRAM", "Display video RAM contents", (*Shell).cmdVram},
		"RESET":   {"RESET", "Reset CPU to initial state", (*Shell).cmdReset},
		"RUN":     {"RUN [addr]", "Execute program from address", (*Shell).cmdRun},
		"STEP":    {"STEP [n]", "Execute n instructions (default 1)", (*Shell).cmdStep},
		"DISASM":  {"DISASM <addr> [n]", "Disassemble n instructions", (*Shell).cmdDisasm},
		"INPUT":   {"INPUT <val|key>", "Set the pending input byte", (*Shell).cmdInput},
		"LOAD":    {"LOAD <file>", "Assemble and load a program", (*Shell).cmdLoad},
		"DUMP":    {"DUMP <start> <end>", "Dump memory range", (*Shell).cmdDump},
		"FILL":    {"FILL <start> <end> <val>", "Fill memory range with value", (*Shell).cmdFill},
		"CLEAR":   {"CLEAR", "Clear the screen", (*Shell).cmdClear},
		"HISTORY": {"HISTORY", "Show command history", (*Shell).cmdHistory},
		"DEMO":    {"DEMO", "Run a demo pattern on VRAM", (*Shell).cmdDemo},
		"INFO":    {"INFO", "Display system information", (*Shell).cmdInfo},
		"VER":     {"VER", "Display version information", (*Shell).cmdVer},
		"EXIT":    {"EXIT", "Exit the shell", (*Shell).cmdExit},
		"QUIT":    {"QUIT", "Exit the shell", (*Shell).cmdExit},
	}
}

// Commands iterates over the monitor command names, in help order,
// followed by the aliases.
func Commands() iter.Seq[string] {
	return internal.IterSeqConcat(slices.Values(_command_order), slices.Values(_command_aliases))
}

// Shell is a monitor session.
type Shell struct {
	Emu      *emulator.Emulator // Machine under control.
	Out      io.Writer          // Command output.
	Color    bool               // Emit ANSI color codes.
	Renderer display.Renderer   // Framebuffer renderer, used by DEMO and VRAM.
	History  []string           // Commands entered so far.

	Sleep func(time.Duration)                      // Frame delay for DEMO.
	Open  func(name string) (io.ReadCloser, error) // File opener for LOAD.

	exit bool
}

// NewShell creates a monitor for emu, writing to out.
func NewShell(emu *emulator.Emulator, out io.Writer, color bool) *Shell {
	return &Shell{
		Emu:      emu,
		Out:      out,
		Color:    color,
		Renderer: display.Renderer{Out: out, Color: color, Home: color},
		Sleep:    time.Sleep,
		Open: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

func (sh *Shell) paint(text, style string) string {
	if !sh.Color {
		return text
	}
	return ansi.ColorCode(style) + text + ansi.Reset
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.Out, format, args...)
}

func (sh *Shell) ok(format string, args ...any) {
	sh.printf("  %s %s\n", sh.paint("✓", "green+h"), translate.From(format, args...))
}

func (sh *Shell) fail(format string, args ...any) {
	sh.printf("  %s\n", sh.paint(translate.From(format, args...), "red+h"))
}

// parseNumber parses a decimal or 0x prefixed hex number.
func parseNumber(s string) (value int, ok bool) {
	var v int64
	var err error
	if strings.HasPrefix(strings.ToUpper(s), "0X") {
		v, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		v, err = strconv.ParseInt(s, 10, 64)
	}
	if err != nil {
		return
	}

	value = int(v)
	ok = true
	return
}

func (sh *Shell) inRange(addr int) bool {
	return addr >= 0 && addr < len(sh.Emu.Cpu.Memory)
}

// Exited returns true once EXIT or QUIT has run.
func (sh *Shell) Exited() bool {
	return sh.exit
}

// Exec runs a single command line. Returns true if the shell should exit.
func (sh *Shell) Exec(line string) (exit bool) {
	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return sh.exit
	}

	sh.History = append(sh.History, strings.ToUpper(line))

	words := strings.Fields(line)
	name := strings.ToUpper(words[0])
	args := words[1:]

	cmd, ok := _commands[name]
	if !ok {
		sh.fail("Unknown command: %v", name)
		sh.printf("  %s\n", sh.paint(translate.From("Type 'HELP' for available commands"), "black+h"))
	} else {
		cmd.run(sh, args)
	}

	sh.printf("\n")
	return sh.exit
}

// Run reads and executes commands until EXIT, end of input, or an interrupt.
func (sh *Shell) Run(lines LineReader) (err error) {
	sh.Banner()

	for !sh.exit {
		var line string
		line, err = lines.Readline()
		if err != nil {
			sh.printf("\n  %s\n\n", sh.paint(translate.From("Exiting shell..."), "cyan+h"))
			if err == io.EOF {
				err = nil
			}
			return
		}
		sh.Exec(line)
	}

	return
}

// Banner prints the shell banner.
func (sh *Shell) Banner() {
	border := func(s string) string { return sh.paint(s, "cyan+h") }
	bar := strings.Repeat("═", 60)
	w, h := sh.Emu.Cpu.Size()

	row := func(text string, width int) {
		sh.printf("  %s  %s%s%s\n", border("║"), text, strings.Repeat(" ", max(0, 58-width)), border("║"))
	}

	sh.printf("\n")
	sh.printf("  %s\n", border("╔"+bar+"╗"))
	title := "GEMINI-1 MICROCOMPUTER - INTERACTIVE SHELL"
	row(sh.paint(title, "white+hb"), len(title))
	sub := fmt.Sprintf("8-bit CPU | %d bytes RAM | %dx%d VRAM", len(sh.Emu.Cpu.Memory), w, h)
	row(sh.paint(sub, "black+h"), len(sub))
	sh.printf("  %s\n", border("╠"+bar+"╣"))
	help := "Type 'HELP' for available commands"
	row(sh.paint(help, "yellow+h"), len(help))
	sh.printf("  %s\n\n", border("╚"+bar+"╝"))
}

func (sh *Shell) cmdHelp(args []string) {
	sh.printf("\n  %s\n\n", sh.paint(translate.From("Available Commands:"), "white+hb"))
	for _, name := range _command_order {
		cmd := _commands[name]
		sh.printf("    %s %s\n", sh.paint(fmt.Sprintf("%-26s", cmd.usage), "cyan+h"), sh.paint(translate.From(cmd.help), "black+h"))
	}
}

func (sh *Shell) flag(set bool) string {
	if set {
		return sh.paint("true", "green+h")
	}
	return sh.paint("false", "red+h")
}

func (sh *Shell) cmdStatus(args []string) {
	cp := sh.Emu.Cpu
	reg := &cp.Register
	tee := sh.paint("├─", "cyan+h")
	sh.printf("\n  %s\n", sh.paint(translate.From("CPU Status:"), "white+hb"))
	sh.printf("  %s Running: %s\n", tee, sh.flag(cp.Running))
	sh.printf("  %s PC: %s (%d)\n", tee, sh.paint(fmt.Sprintf("0x%02X", reg.PC), "yellow+h"), reg.PC)
	sh.printf("  %s SP: %s (%d)\n", tee, sh.paint(fmt.Sprintf("0x%02X", reg.SP), "yellow+h"), reg.SP)
	sh.printf("  %s Zero Flag: %s\n", tee, sh.flag(reg.Zero))
	sh.printf("  %s Carry Flag: %s\n", sh.paint("└─", "cyan+h"), sh.flag(reg.Carry))
}

func (sh *Shell) cmdRegs(args []string) {
	reg := &sh.Emu.Cpu.Register
	sh.printf("\n  %s\n", sh.paint(translate.From("CPU Registers:"), "white+hb"))
	for _, r := range []struct {
		name  string
		value byte
	}{{"A", reg.A}, {"B", reg.B}, {"C", reg.C}, {"D", reg.D}} {
		sh.printf("  %s = %s (%3d) [%s]\n", sh.paint(fmt.Sprintf("%-3s", r.name), "cyan+h"),
			sh.paint(fmt.Sprintf("0x%02X", r.value), "yellow+h"), r.value,
			sh.paint(fmt.Sprintf("%08b", r.value), "black+h"))
	}
	sh.printf("  %s = %s (%3d)\n", sh.paint("PC ", "cyan+h"), sh.paint(fmt.Sprintf("0x%02X", reg.PC), "yellow+h"), reg.PC)
	sh.printf("  %s = %s (%3d)\n", sh.paint("SP ", "cyan+h"), sh.paint(fmt.Sprintf("0x%02X", reg.SP), "yellow+h"), reg.SP)
	sh.printf("  %s = %s\n", sh.paint("ZF ", "cyan+h"), sh.flag(reg.Zero))
	sh.printf("  %s = %s\n", sh.paint("CF ", "cyan+h"), sh.flag(reg.Carry))
	sh.printf("  %s = %s\n", sh.paint("IN ", "cyan+h"), sh.paint(fmt.Sprintf("0x%02X", sh.Emu.Cpu.PendingInput()), "yellow+h"))
}

func (sh *Shell) cmdPeek(args []string) {
	if len(args) == 0 {
		sh.fail("Usage: PEEK <address>")
		return
	}
	addr, ok := parseNumber(args[0])
	if !ok {
		sh.fail("ERROR: Invalid address")
		return
	}
	if !sh.inRange(addr) {
		sh.fail("ERROR: Address out of range")
		return
	}
	val := sh.Emu.Cpu.Peek(addr)
	sh.printf("  [%s] = %s (%d)\n", sh.paint(fmt.Sprintf("0x%04X", addr), "yellow+h"),
		sh.paint(fmt.Sprintf("0x%02X", val), "green+h"), val)
}

func (sh *Shell) cmdPoke(args []string) {
	if len(args) < 2 {
		sh.fail("Usage: POKE <address> <value>")
		return
	}
	addr, ok_addr := parseNumber(args[0])
	val, ok_val := parseNumber(args[1])
	if !ok_addr || !ok_val {
		sh.fail("ERROR: Invalid address or value")
		return
	}
	if !sh.inRange(addr) {
		sh.fail("ERROR: Address out of range")
		return
	}
	sh.Emu.Cpu.Poke(addr, byte(val&0xff))
	sh.ok("Written 0x%02X to [0x%04X]", val&0xff, addr)
}

func (sh *Shell) cmdDump(args []string) {
	if len(args) < 2 {
		sh.fail("Usage: DUMP <start> <end>")
		return
	}
	start, ok_start := parseNumber(args[0])
	end, ok_end := parseNumber(args[1])
	if !ok_start || !ok_end || start < 0 {
		sh.fail("ERROR: Invalid addresses")
		return
	}

	mem := sh.Emu.Cpu.Memory
	sh.printf("\n  %s\n\n", translate.From("Memory Dump [0x%04X - 0x%04X]:", start, end))
	for addr := start; addr <= end && addr < len(mem); addr += 16 {
		var hex, text strings.Builder
		hex.WriteString(sh.paint(fmt.Sprintf("0x%04X", addr), "yellow+h") + "  ")
		for i := range 16 {
			if addr+i <= end && addr+i < len(mem) {
				b := mem[addr+i]
				hex.WriteString(sh.paint(fmt.Sprintf("%02X", b), "cyan+h") + " ")
				if b >= 32 && b < 127 {
					text.WriteByte(b)
				} else {
					text.WriteString(sh.paint(".", "black+h"))
				}
			} else {
				hex.WriteString("   ")
				text.WriteByte(' ')
			}
			if i == 7 {
				hex.WriteByte(' ')
			}
		}
		sh.printf("  %s %s %s\n", hex.String(), sh.paint("|", "black+h"), text.String())
	}
}

func (sh *Shell) cmdFill(args []string) {
	if len(args) < 3 {
		sh.fail("Usage: FILL <start> <end> <value>")
		return
	}
	start, ok_start := parseNumber(args[0])
	end, ok_end := parseNumber(args[1])
	val, ok_val := parseNumber(args[2])
	if !ok_start || !ok_end || !ok_val || start < 0 {
		sh.fail("ERROR: Invalid parameters")
		return
	}
	for addr := start; addr <= end && addr < len(sh.Emu.Cpu.Memory); addr++ {
		sh.Emu.Cpu.Poke(addr, byte(val&0xff))
	}
	sh.ok("Filled memory range with 0x%02X", val&0xff)
}

func (sh *Shell) cmdVram(args []string) {
	err := sh.Renderer.Vram(sh.Emu.Cpu)
	if err != nil {
		sh.fail("ERROR: %v", err)
	}
}

func (sh *Shell) cmdReset(args []string) {
	sh.Emu.Cpu.Reset()
	sh.ok("CPU reset")
}

func (sh *Shell) cmdRun(args []string) {
	start := 0
	if len(args) > 0 {
		addr, ok := parseNumber(args[0])
		if ok {
			start = addr
		}
	}

	cp := sh.Emu.Cpu
	cp.Register.PC = start
	cp.Running = true
	sh.printf("  %s\n", sh.paint(translate.From("Running from address 0x%04X...", start), "green+h"))

	steps, err := sh.Emu.Run(emulator.STEP_BUDGET)
	sh.ok("Executed %d instructions", steps)
	if err != nil {
		sh.fail("%v", err)
	}
}

func (sh *Shell) cmdStep(args []string) {
	n := 1
	if len(args) > 0 {
		v, ok := parseNumber(args[0])
		if ok {
			n = v
		}
	}

	start := sh.Emu.Ticks()
	for range max(n, 0) {
		done, err := sh.Emu.Tick()
		if err != nil {
			sh.fail("%v", err)
			break
		}
		if done {
			break
		}
	}

	sh.ok("Stepped %d instruction(s)", sh.Emu.Ticks()-start)
	sh.cmdStatus(nil)
}

func (sh *Shell) cmdDisasm(args []string) {
	if len(args) == 0 {
		sh.fail("Usage: DISASM <address> [count]")
		return
	}
	addr, ok := parseNumber(args[0])
	if !ok || !sh.inRange(addr) {
		sh.fail("ERROR: Invalid address")
		return
	}
	count := DISASM_LINES
	if len(args) > 1 {
		v, ok := parseNumber(args[1])
		if ok {
			count = v
		}
	}

	cp := sh.Emu.Cpu
	for range count {
		if !sh.inRange(addr) {
			break
		}
		text, size := cp.Disassemble(addr)
		var raw strings.Builder
		for i := range size {
			fmt.Fprintf(&raw, "%02X ", cp.Peek(addr+i))
		}
		marker := "  "
		if addr == cp.Register.PC {
			marker = sh.paint("▶ ", "green+h")
		}
		sh.printf("  %s%s  %-9s %s\n", marker, sh.paint(fmt.Sprintf("0x%04X", addr), "yellow+h"), raw.String(), text)
		addr += size
	}
}

func (sh *Shell) cmdInput(args []string) {
	if len(args) == 0 {
		sh.fail("Usage: INPUT <value|key>")
		return
	}

	value, ok := parseNumber(args[0])
	if !ok {
		key, err := gio.KeyOf(args[0])
		if err != nil {
			sh.fail("ERROR: %v", err)
			return
		}
		value = int(key)
	}

	sh.Emu.Cpu.SetPendingInput(byte(value & 0xff))
	sh.ok("Pending input 0x%02X", value&0xff)
}

func (sh *Shell) cmdLoad(args []string) {
	if len(args) == 0 {
		sh.fail("Usage: LOAD <file>")
		return
	}

	inf, err := sh.Open(args[0])
	if err != nil {
		sh.fail("ERROR: %v", err)
		return
	}
	defer inf.Close()

	err = sh.Emu.Assemble(inf)
	if err != nil {
		sh.fail("ERROR: %v", err)
		return
	}

	err = sh.Emu.Reset()
	if err != nil {
		sh.fail("ERROR: %v", err)
		return
	}

	origin, image := sh.Emu.Program.Binary()
	sh.ok("Loaded %d bytes at 0x%04X, entry 0x%04X", len(image), origin, sh.Emu.Cpu.Register.PC)
}

func (sh *Shell) cmdClear(args []string) {
	sh.printf("\033[2J\033[H")
	sh.Banner()
}

func (sh *Shell) cmdHistory(args []string) {
	sh.printf("\n  %s\n\n", sh.paint(translate.From("Command History:"), "white+h"))
	first := max(0, len(sh.History)-HISTORY_SHOWN)
	for n, h := range sh.History[first:] {
		sh.printf("  %s %s\n", sh.paint(fmt.Sprintf("%3d.", n+1), "black+h"), h)
	}
}

func (sh *Shell) cmdDemo(args []string) {
	sh.printf("  %s\n\n", sh.paint(translate.From("Running demo pattern..."), "green+h"))

	for frame := range DEMO_FRAMES {
		display.DemoPattern(sh.Emu.Cpu, frame)
		err := sh.Renderer.Render(sh.Emu.Cpu, "DEMO MODE", false, "")
		if err != nil {
			sh.fail("ERROR: %v", err)
			return
		}
		sh.Sleep(DEMO_DELAY)
	}

	sh.printf("\n")
	sh.ok("Demo complete")
}

func (sh *Shell) cmdInfo(args []string) {
	cp := sh.Emu.Cpu
	w, h := cp.Size()
	tee := sh.paint("├─", "cyan+h")
	sh.printf("\n  %s\n", sh.paint(translate.From("System Information:"), "white+hb"))
	sh.printf("  %s CPU: GEMINI-1 (8-bit)\n", tee)
	sh.printf("  %s %s\n", tee, translate.From("Memory: %d bytes (%dKB)", len(cp.Memory), len(cp.Memory)/1024))
	sh.printf("  %s VRAM: %d bytes (%dx%d)\n", tee, w*h, w, h)
	sh.printf("  %s VRAM Start: 0x%04X\n", tee, cpu.VRAM_START)
	sh.printf("  %s Stack Top: 0x%02X\n", tee, cpu.STACK_TOP)
	sh.printf("  %s Locale: %s\n", tee, translate.Language())
	sh.printf("  %s Instruction Set: %d opcodes\n", sh.paint("└─", "cyan+h"), cpu.InstructionSetSize())
}

func (sh *Shell) cmdVer(args []string) {
	sh.printf("\n  %s\n", sh.paint("GEMINI-1 MONITOR v"+VERSION, "yellow+h"))
	sh.printf("  %s\n", sh.paint("(C) 1983 GEMINI CORPORATION", "black+h"))
}

func (sh *Shell) cmdExit(args []string) {
	sh.exit = true
	sh.printf("\n  %s\n", sh.paint(translate.From("Exiting shell..."), "cyan+h"))
}
