package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mgutz/ansi"
)

// Color styles, in mgutz/ansi notation.
const (
	STYLE_BORDER = "cyan+h"
	STYLE_SHADOW = "black+h"
	STYLE_SCORE  = "green+h"
	STYLE_HIGH   = "magenta+h"
	STYLE_LABEL  = "white+h"
	STYLE_PAUSED = "red+hB"
	STYLE_DIM    = "black+h"
)

var _title_palette = []string{"magenta+h", "blue+h", "cyan+h", "green+h", "yellow+h"}

type cell struct {
	text  string
	style string
}

// Each cell is two terminal columns wide.
var _glyph_cells = [GLYPH_COUNT]cell{
	GLYPH_EMPTY:      {"  ", ""},
	GLYPH_LIGHT:      {"░░", STYLE_DIM},
	GLYPH_MEDIUM:     {" .", "white"},
	GLYPH_HEAVY:      {"● ", "yellow+h"},
	GLYPH_WALL:       {"▓▓", "blue"},
	GLYPH_FOOD:       {"● ", "green+h"},
	GLYPH_PADDLE:     {"▒▒", "cyan"},
	GLYPH_BALL:       {"● ", "yellow"},
	GLYPH_SNAKE_BODY: {"● ", "green"},
	GLYPH_SNAKE_HEAD: {"★★", "green+h"},
	GLYPH_BRICK:      {"▓▓", "red"},
	GLYPH_CAR:        {"▒▒", "magenta"},
	GLYPH_OBSTACLE:   {"▓▓", "red"},
	GLYPH_AI_CAR:     {"▓▓", "208"},
	GLYPH_FINISH:     {"▓▓", "220"},
	GLYPH_PACMAN:     {"● ", "yellow+h"},
}

var _unknown_cell = cell{"██", ""}

// Renderer draws screens as text.
type Renderer struct {
	Out   io.Writer // Destination.
	Color bool      // Emit ANSI color codes.
	Home  bool      // Clear the terminal before each frame.
}

func (r *Renderer) paint(text, style string) string {
	if !r.Color || len(style) == 0 {
		return text
	}
	return ansi.ColorCode(style) + text + ansi.Reset
}

func (r *Renderer) gradient(text string, palette []string) string {
	if !r.Color {
		return text
	}
	var sb strings.Builder
	n := 0
	for _, ch := range text {
		sb.WriteString(ansi.ColorCode(palette[n%len(palette)]))
		sb.WriteRune(ch)
		n++
	}
	sb.WriteString(ansi.Reset)
	return sb.String()
}

// center pads text, whose visible form is plain, to width columns.
func center(text, plain string, width int) string {
	pad := max(0, width-runewidth.StringWidth(plain))
	left := pad / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
}

// Cell returns the two column text for a glyph code at (x, y).
func (r *Renderer) Cell(value byte, x, y int) string {
	g := Glyph(value)
	if g == GLYPH_EMPTY {
		text := "  "
		if (x+y)%2 == 0 {
			text = ". "
		}
		return r.paint(text, STYLE_DIM)
	}
	if !g.Known() {
		return r.paint(_unknown_cell.text, _unknown_cell.style)
	}
	c := _glyph_cells[g]
	return r.paint(c.text, c.style)
}

// Render draws the screen in a bordered frame, with a title, the score
// cells, an optional pause badge and info line, and the control legend.
func (r *Renderer) Render(screen Screen, title string, paused bool, info string) (err error) {
	width, height := screen.Size()
	pw := width * 2

	var sb strings.Builder

	line := func(text string) {
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	border := func(text string) string {
		return r.paint(text, STYLE_BORDER)
	}
	row := func(text string) {
		line(border("║") + text + border("║"))
	}
	rule := func(left, right string) {
		line(border(left + strings.Repeat("═", pw) + right))
	}

	if r.Home {
		sb.WriteString("\033[H\033[J")
	}

	line(r.paint(strings.Repeat("▄", pw+2), STYLE_SHADOW))
	rule("╔", "╗")

	plain := fmt.Sprintf("◉ %s ◉", title)
	row(center(r.gradient(plain, _title_palette), plain, pw))
	rule("╠", "╣")

	for y := range height {
		var cells strings.Builder
		for x := range width {
			cells.WriteString(r.Cell(screen.Pixel(x, y), x, y))
		}
		row(cells.String())
	}

	rule("╠", "╣")

	score := fmt.Sprintf("%-4d", screen.Score())
	high := fmt.Sprintf("%-4d", screen.HighScore())
	plain = " SCORE " + score + "    HIGH " + high
	text := r.paint(" SCORE ", STYLE_LABEL) + r.paint(score, STYLE_SCORE) +
		"   " + r.paint(" HIGH ", STYLE_LABEL) + r.paint(high, STYLE_HIGH)
	row(center(text, plain, pw))

	if paused {
		plain = "== PAUSED =="
		row(center(r.paint(plain, STYLE_PAUSED), plain, pw))
	}

	if len(info) > 0 {
		row(center(r.paint(info, STYLE_LABEL), info, pw))
	}

	rule("╠", "╣")
	labels := "Move    Pause   Reset   Quit"
	keys := "←↑↓→      P       R       Q"
	row(center(r.paint(labels, STYLE_DIM), labels, pw))
	row(center(r.paint(keys, STYLE_DIM), keys, pw))
	rule("╚", "╝")
	line(r.paint(strings.Repeat("▀", pw+2), STYLE_SHADOW))

	_, err = io.WriteString(r.Out, sb.String())
	return
}

// Vram draws the framebuffer as a grid of hex cell values.
func (r *Renderer) Vram(screen Screen) (err error) {
	width, height := screen.Size()

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  %s\n\n", r.paint(fmt.Sprintf("VRAM Display (%dx%d):", width, height), STYLE_LABEL))
	sb.WriteString("  " + r.paint("╔"+strings.Repeat("═", width*2)+"╗", STYLE_BORDER) + "\n")
	for y := range height {
		sb.WriteString("  " + r.paint("║", STYLE_BORDER))
		for x := range width {
			val := screen.Pixel(x, y)
			if val == 0 {
				sb.WriteString(r.paint("··", STYLE_DIM))
			} else {
				sb.WriteString(r.paint(fmt.Sprintf("%02X", val), STYLE_SCORE))
			}
		}
		sb.WriteString(r.paint("║", STYLE_BORDER) + "\n")
	}
	sb.WriteString("  " + r.paint("╚"+strings.Repeat("═", width*2)+"╝", STYLE_BORDER) + "\n\n")

	_, err = io.WriteString(r.Out, sb.String())
	return
}
