// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/gemini/cpu"
	"github.com/ezrec/gemini/emulator"
	"github.com/ezrec/gemini/monitor"
	"github.com/ezrec/gemini/score"
)

type script []string

func (s *script) Readline() (line string, err error) {
	if len(*s) == 0 {
		return "EXIT", nil
	}
	line, *s = (*s)[0], (*s)[1:]
	return
}

func TestSaveScore(t *testing.T) {
	assert := assert.New(t)

	emu, err := emulator.NewEmulator(emulator.FB_WIDTH, emulator.FB_HEIGHT)
	assert.NoError(err)

	dir := t.TempDir()
	table := score.NewTable(dir)
	table.Sync("snake", emu.Cpu)

	var out strings.Builder
	sh := monitor.NewShell(emu, &out, false)
	assert.NoError(sh.Run(&script{"POKE 0x100 17"}))

	saveScore(table, "snake", emu)

	saved := score.NewTable(dir)
	assert.NoError(saved.Load())
	assert.Equal(17, saved.Get("snake"))

	// Lower scores do not replace the high score.
	emu.Cpu.Memory[cpu.SCORE_ADDR] = 3
	saveScore(table, "snake", emu)
	assert.NoError(saved.Load())
	assert.Equal(17, saved.Get("snake"))

	saveScore(nil, "snake", emu)
	saveScore(&score.Table{}, "snake", emu)
}
