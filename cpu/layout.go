package cpu

import (
	"fmt"
)

// Fixed memory layout shared with renderers and games.
const (
	STACK_TOP       = 0xFF  // Initial stack pointer.
	SCORE_ADDR      = 0x100 // Current score cell.
	HIGH_SCORE_ADDR = 0x101 // High score cell.
	VRAM_START      = 0x200 // First framebuffer cell.
	VRAM_PAD        = 256   // Scratch bytes after the framebuffer.
)

var _layout_defines = map[string]string{
	"STACK_TOP":       fmt.Sprintf("%#x", STACK_TOP),
	"SCORE_ADDR":      fmt.Sprintf("%#x", SCORE_ADDR),
	"HIGH_SCORE_ADDR": fmt.Sprintf("%#x", HIGH_SCORE_ADDR),
	"VRAM_START":      fmt.Sprintf("%#x", VRAM_START),
}

// MemorySize returns the memory length for a framebuffer geometry.
func MemorySize(width, height int) int {
	return VRAM_START + width*height + VRAM_PAD
}
