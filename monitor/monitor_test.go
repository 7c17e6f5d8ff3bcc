package monitor

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gemini/cpu"
	"github.com/ezrec/gemini/emulator"
	gio "github.com/ezrec/gemini/io"
)

var testFiles = map[string]string{
	"score.asm": strings.Join([]string{
		"LDA_IMM 5",
		"STA_ABS SCORE_ADDR",
		"HALT",
	}, "\n"),
	"spin.asm": "spin: JMP spin",
	"bad.asm":  "BOGUS",
}

func newShell(t *testing.T) (sh *Shell, out *bytes.Buffer, sleeps *int) {
	emu, err := emulator.NewEmulator(8, 8)
	if err != nil {
		t.Fatal(err)
	}

	out = &bytes.Buffer{}
	sh = NewShell(emu, out, false)

	sleeps = new(int)
	sh.Sleep = func(time.Duration) { *sleeps++ }
	sh.Open = func(name string) (io.ReadCloser, error) {
		text, ok := testFiles[name]
		if !ok {
			return nil, os.ErrNotExist
		}
		return io.NopCloser(strings.NewReader(text)), nil
	}

	return
}

func exec(sh *Shell, out *bytes.Buffer, line string) string {
	out.Reset()
	sh.Exec(line)
	return out.String()
}

func TestShellHelp(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	text := exec(sh, out, "help")

	for name := range Commands() {
		assert.Contains(text, name)
	}
	assert.Contains(text, "POKE <addr> <val>")

	text = exec(sh, out, "frobnicate now")
	assert.Contains(text, "Unknown command: FROBNICATE")
}

func TestShellPeekPoke(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	size := len(sh.Emu.Cpu.Memory)

	text := exec(sh, out, "POKE 0x210 0x1ff")
	assert.Contains(text, "Written 0xFF to [0x0210]")
	assert.Equal(byte(0xff), sh.Emu.Cpu.Memory[0x210])

	text = exec(sh, out, "peek 528")
	assert.Contains(text, "[0x0210] = 0xFF (255)")

	text = exec(sh, out, "MEM 0x10")
	assert.Contains(text, "[0x0010] = 0x00 (0)")

	text = exec(sh, out, "POKE 99999 1")
	assert.Contains(text, "ERROR: Address out of range")
	assert.Equal(size, len(sh.Emu.Cpu.Memory))

	assert.Contains(exec(sh, out, "PEEK"), "Usage: PEEK <address>")
	assert.Contains(exec(sh, out, "PEEK zz"), "ERROR: Invalid address")
	assert.Contains(exec(sh, out, "POKE 1"), "Usage: POKE <address> <value>")
	assert.Contains(exec(sh, out, "POKE 1 x"), "ERROR: Invalid address or value")
}

func TestShellFillDump(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)

	text := exec(sh, out, "FILL 0x40 0x43 0x41")
	assert.Contains(text, "Filled memory range with 0x41")
	assert.Equal([]byte{0x41, 0x41, 0x41, 0x41, 0x00}, sh.Emu.Cpu.Memory[0x40:0x45])

	text = exec(sh, out, "DUMP 0x40 0x4f")
	assert.Contains(text, "Memory Dump [0x0040 - 0x004F]:")
	assert.Contains(text, "0x0040  41 41 41 41 00 00 00 00  00 00 00 00 00 00 00 00")
	assert.Contains(text, "| AAAA....")

	assert.Contains(exec(sh, out, "DUMP 1"), "Usage: DUMP <start> <end>")
	assert.Contains(exec(sh, out, "FILL 1 2"), "Usage: FILL <start> <end> <value>")
}

func TestShellLoadRun(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)

	text := exec(sh, out, "LOAD score.asm")
	assert.Contains(text, "Loaded 6 bytes at 0x0000, entry 0x0000")

	text = exec(sh, out, "DISASM 0 3")
	assert.Contains(text, "LDA_IMM 0x05")
	assert.Contains(text, "STA_ABS 0x0100")
	assert.Contains(text, "HALT")

	text = exec(sh, out, "RUN")
	assert.Contains(text, "Running from address 0x0000...")
	assert.Contains(text, "Executed 3 instructions")
	assert.Equal(byte(5), sh.Emu.Cpu.Score())
	assert.True(sh.Emu.Cpu.Halted())

	assert.Contains(exec(sh, out, "LOAD missing.asm"), "ERROR:")
	assert.Contains(exec(sh, out, "LOAD bad.asm"), "instruction invalid")
	assert.Contains(exec(sh, out, "LOAD"), "Usage: LOAD <file>")
}

func TestShellRunBudget(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	exec(sh, out, "LOAD spin.asm")

	text := exec(sh, out, "RUN 0")
	assert.Contains(text, "Executed")
	assert.Contains(text, "step budget exhausted")
	assert.Equal(emulator.STEP_BUDGET, sh.Emu.Ticks())
	assert.True(sh.Emu.Cpu.Running)
}

func TestShellStep(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	exec(sh, out, "LOAD score.asm")

	text := exec(sh, out, "STEP")
	assert.Contains(text, "Stepped 1 instruction(s)")
	assert.Contains(text, "PC: 0x02 (2)")
	assert.Equal(byte(5), sh.Emu.Cpu.Register.A)

	text = exec(sh, out, "STEP 5")
	assert.Contains(text, "Stepped 2 instruction(s)")
	assert.Contains(text, "Running: false")
	assert.Equal(3, sh.Emu.Ticks())

	text = exec(sh, out, "STEP 99999999999")
	assert.Contains(text, "Stepped 0 instruction(s)")
	assert.Equal(3, sh.Emu.Ticks())
}

func TestShellRegsReset(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	sh.Emu.Cpu.Register.B = 0x81

	text := exec(sh, out, "REGS")
	assert.Contains(text, "B   = 0x81 (129) [10000001]")
	assert.Contains(text, "SP  = 0xFF (255)")

	sh.Emu.Cpu.Running = false
	text = exec(sh, out, "RESET")
	assert.Contains(text, "CPU reset")
	assert.Equal(cpu.PowerOn(), sh.Emu.Cpu.Register)
	assert.True(sh.Emu.Cpu.Running)

	text = exec(sh, out, "STATUS")
	assert.Contains(text, "Running: true")
	assert.Contains(text, "Carry Flag: false")
}

func TestShellInput(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)

	text := exec(sh, out, "INPUT up")
	assert.Contains(text, "Pending input 0x80")
	assert.Equal(byte(gio.KEY_UP), sh.Emu.Cpu.PendingInput())

	exec(sh, out, "INPUT 0x41")
	assert.Equal(byte('A'), sh.Emu.Cpu.PendingInput())

	text = exec(sh, out, "INPUT sideways")
	assert.Contains(text, "ERROR: key SIDEWAYS unknown")
	assert.Equal(byte('A'), sh.Emu.Cpu.PendingInput())
}

func TestShellVramDemo(t *testing.T) {
	assert := assert.New(t)

	sh, out, sleeps := newShell(t)

	text := exec(sh, out, "VRAM")
	assert.Contains(text, "VRAM Display (8x8):")
	assert.Contains(text, "║"+strings.Repeat("··", 8)+"║")

	text = exec(sh, out, "DEMO")
	assert.Contains(text, "DEMO MODE")
	assert.Contains(text, "Demo complete")
	assert.Equal(DEMO_FRAMES, *sleeps)
	assert.Equal(DEMO_FRAMES, strings.Count(text, "◉ DEMO MODE ◉"))

	// Last frame drawn is DEMO_FRAMES-1.
	frame := DEMO_FRAMES - 1
	assert.Equal(byte(((2+frame)*(3+frame))%16), sh.Emu.Cpu.Pixel(2, 3))
}

func TestShellInfo(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)

	text := exec(sh, out, "INFO")
	assert.Contains(text, "Instruction Set: 29 opcodes")
	assert.Contains(text, "VRAM: 64 bytes (8x8)")
	assert.Contains(text, "VRAM Start: 0x0200")
	assert.Contains(text, "Stack Top: 0xFF")

	text = exec(sh, out, "VER")
	assert.Contains(text, "GEMINI-1 MONITOR v"+VERSION)
}

func TestShellHistory(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	for range 25 {
		sh.Exec("regs")
	}
	sh.Exec("")

	text := exec(sh, out, "history")
	assert.Equal(26, len(sh.History))
	assert.Contains(text, " 19. REGS")
	assert.Contains(text, " 20. HISTORY")
	assert.NotContains(text, " 21.")
}

func TestShellExit(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	assert.False(sh.Exec("ver"))
	assert.False(sh.Exited())

	out.Reset()
	assert.True(sh.Exec("quit"))
	assert.True(sh.Exited())
	assert.Contains(out.String(), "Exiting shell...")
}

type lines struct {
	text []string
}

func (l *lines) Readline() (line string, err error) {
	if len(l.text) == 0 {
		err = io.EOF
		return
	}
	line, l.text = l.text[0], l.text[1:]
	return
}

func TestShellRun(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	err := sh.Run(&lines{[]string{"POKE 0x100 9", "EXIT", "POKE 0x100 10"}})
	assert.NoError(err)
	assert.Contains(out.String(), "GEMINI-1 MICROCOMPUTER - INTERACTIVE SHELL")
	assert.Equal(byte(9), sh.Emu.Cpu.Score())

	sh, out, _ = newShell(t)
	err = sh.Run(&lines{[]string{"POKE 0x101 7"}})
	assert.NoError(err)
	assert.Equal(byte(7), sh.Emu.Cpu.HighScore())
	assert.Contains(out.String(), "Exiting shell...")
}

func TestShellColor(t *testing.T) {
	assert := assert.New(t)

	sh, out, _ := newShell(t)
	sh.Color = true

	text := exec(sh, out, "PEEK 0")
	assert.Contains(text, "\033[")
	assert.Contains(text, "0x0000")
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	for text, value := range map[string]int{"0x1F": 31, "0X10": 16, "42": 42, "-3": -3} {
		v, ok := parseNumber(text)
		assert.True(ok, text)
		assert.Equal(value, v, text)
	}

	for _, text := range []string{"", "0x", "1f", "0b101", "four"} {
		_, ok := parseNumber(text)
		assert.False(ok, text)
	}
}

func TestCompleter(t *testing.T) {
	assert := assert.New(t)

	completer := Completer()
	candidates, length := completer.Do([]rune("IN"), 2)
	assert.Equal(2, length)

	var words []string
	for _, c := range candidates {
		words = append(words, string(c))
	}
	assert.Contains(words, "PUT ")
	assert.Contains(words, "FO ")
}
