// Package display draws the GEMINI-1 framebuffer on an ANSI terminal.
//
// Each framebuffer cell holds a glyph code. Codes 0-15 have a fixed
// appearance; any other value is drawn as a solid block.
package display

import (
	"fmt"
	"iter"
	"maps"
)

// Glyph is a framebuffer cell value.
type Glyph byte

const (
	GLYPH_EMPTY      = Glyph(0)  // EMPTY
	GLYPH_LIGHT      = Glyph(1)  // LIGHT
	GLYPH_MEDIUM     = Glyph(2)  // MEDIUM
	GLYPH_HEAVY      = Glyph(3)  // HEAVY
	GLYPH_WALL       = Glyph(4)  // WALL
	GLYPH_FOOD       = Glyph(5)  // FOOD
	GLYPH_PADDLE     = Glyph(6)  // PADDLE
	GLYPH_BALL       = Glyph(7)  // BALL
	GLYPH_SNAKE_BODY = Glyph(8)  // SNAKE_BODY
	GLYPH_SNAKE_HEAD = Glyph(9)  // SNAKE_HEAD
	GLYPH_BRICK      = Glyph(10) // BRICK
	GLYPH_CAR        = Glyph(11) // CAR
	GLYPH_OBSTACLE   = Glyph(12) // OBSTACLE
	GLYPH_AI_CAR     = Glyph(13) // AI_CAR
	GLYPH_FINISH     = Glyph(14) // FINISH
	GLYPH_PACMAN     = Glyph(15) // PACMAN

	GLYPH_COUNT = 16
)

var _glyph_names = [GLYPH_COUNT]string{
	"EMPTY", "LIGHT", "MEDIUM", "HEAVY", "WALL", "FOOD", "PADDLE", "BALL",
	"SNAKE_BODY", "SNAKE_HEAD", "BRICK", "CAR", "OBSTACLE", "AI_CAR", "FINISH", "PACMAN",
}

// Known returns true for the sixteen defined glyph codes.
func (g Glyph) Known() bool {
	return g < GLYPH_COUNT
}

func (g Glyph) String() string {
	if !g.Known() {
		return fmt.Sprintf("Glyph(%d)", byte(g))
	}
	return _glyph_names[g]
}

// Defines returns the GLYPH_* assembler equates.
func Defines() iter.Seq2[string, string] {
	defines := make(map[string]string, GLYPH_COUNT)
	for n, name := range _glyph_names {
		defines["GLYPH_"+name] = fmt.Sprintf("%d", n)
	}
	return maps.All(defines)
}
