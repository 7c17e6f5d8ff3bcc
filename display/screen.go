package display

// Screen is a read-only view of a framebuffer and its score cells.
type Screen interface {
	Size() (width, height int)
	Pixel(x, y int) byte
	Score() byte
	HighScore() byte
}

// Canvas is a writable framebuffer.
type Canvas interface {
	Screen
	SetPixel(x, y int, value byte)
	ClearVram()
}

// DemoPattern draws frame number frame of the diagonal demo pattern.
func DemoPattern(canvas Canvas, frame int) {
	width, height := canvas.Size()

	canvas.ClearVram()
	for y := range height {
		for x := range width {
			canvas.SetPixel(x, y, byte(((x+frame)*(y+frame))%GLYPH_COUNT))
		}
	}
}
