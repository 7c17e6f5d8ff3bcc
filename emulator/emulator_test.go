package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gemini/cpu"
)

func newEmulator(t *testing.T, program ...string) (emu *Emulator) {
	emu, err := NewEmulator(FB_WIDTH, FB_HEIGHT)
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(FB_WIDTH, FB_HEIGHT)
	assert.NoError(err)
	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(cpu.MemorySize(FB_WIDTH, FB_HEIGHT), len(emu.Cpu.Memory))

	_, err = NewEmulator(0, 0)
	assert.ErrorIs(err, cpu.ErrGeometry)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(20, 10)
	assert.NoError(err)

	defines := maps.Collect(emu.Defines())
	assert.Equal("1000", defines["STEP_BUDGET"])
	assert.Equal("20", defines["VRAM_WIDTH"])
	assert.Equal("10", defines["VRAM_HEIGHT"])
	assert.Equal("0x100", defines["SCORE_ADDR"])
	assert.Equal("4", defines["GLYPH_WALL"])
	assert.Equal("0x80", defines["KEY_UP"])
}

var fireCounter = []string{
	".org 0x10",
	"loop:   INP",
	"        MOV_BA              ; B = key",
	"        LDA_IMM KEY_QUIT",
	"        CMP",
	"        JZ done",
	"        LDA_IMM KEY_FIRE",
	"        CMP",
	"        JNZ loop",
	"        LDA_ABS SCORE_ADDR",
	"        INC",
	"        STA_ABS SCORE_ADDR",
	"        JMP loop",
	"done:   HALT",
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, fireCounter...)
	assert.Equal(0x10, emu.Cpu.Register.PC)
	assert.Equal(2, emu.LineNo())

	emu.Tape.Input = strings.NewReader("  x \x1b[Aq")
	steps, err := emu.Run(0)
	assert.NoError(err)
	assert.True(emu.Cpu.Halted())
	assert.Equal(byte(3), emu.Cpu.Score())
	assert.Equal(14, emu.LineNo())
	assert.Equal(emu.Ticks(), steps)
	assert.Equal(byte(0), emu.Cpu.PendingInput())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t, fireCounter...)

	emu.Tape.Input = strings.NewReader(" q")
	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(byte(1), emu.Cpu.Score())

	emu.Tape.Input = strings.NewReader("   q")
	assert.NoError(emu.Reset())
	assert.Equal(0, emu.Ticks())
	assert.True(emu.Cpu.Running)

	_, err = emu.Run(0)
	assert.NoError(err)
	assert.Equal(byte(4), emu.Cpu.Score())
}

func TestEmulatorBudget(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t,
		"NOP",
		"spin: JMP spin",
	)

	steps, err := emu.Run(50)
	assert.Equal(50, steps)
	assert.ErrorIs(err, ErrBudget)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(2, runtime.LineNo)
	assert.False(emu.Cpu.Halted())

	steps, err = emu.Run(0)
	assert.Equal(STEP_BUDGET, steps)
	assert.ErrorIs(err, ErrBudget)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t,
		"LDA_IMM 1",
		"HALT",
	)

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(2, emu.Ticks())
	assert.Equal(byte(1), emu.Cpu.Register.A)
}

func TestEmulatorTapeError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")

	emu := newEmulator(t, "INP", "HALT")
	emu.Tape.Input = iotest.ErrReader(boom)

	_, err := emu.Tick()
	assert.ErrorIs(err, boom)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(1, runtime.LineNo)
	assert.Equal(0, emu.Ticks())
}

func TestEmulatorFramebuffer(t *testing.T) {
	assert := assert.New(t)

	emu := newEmulator(t,
		"LDA_IMM GLYPH_WALL",
		"STA_ABS $(VRAM_START + VRAM_WIDTH + 1)",
		"LDB_IMM $(VRAM_START & 0xff)",
		"LDC_IMM $(VRAM_START >> 8)",
		"HALT",
	)

	_, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(byte(4), emu.Cpu.Pixel(1, 1))
	assert.Equal(byte(0), emu.Cpu.Pixel(0, 0))
	assert.Equal(byte(0x00), emu.Cpu.Register.B)
	assert.Equal(byte(0x02), emu.Cpu.Register.C)
}

func TestEmulatorAssembleError(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(FB_WIDTH, FB_HEIGHT)
	assert.NoError(err)

	prog := emu.Program
	err = emu.Assemble(strings.NewReader("NOP\nBOGUS"))
	assert.ErrorIs(err, cpu.ErrInstructionInvalid)
	assert.Same(prog, emu.Program)
}
