package cpu

// Read returns the byte at addr, or 0 if addr is outside memory.
func (cpu *Cpu) Read(addr int) byte {
	if addr < 0 || addr >= len(cpu.Memory) {
		return 0
	}
	return cpu.Memory[addr]
}

// Write stores value at addr. Writes outside memory are dropped.
func (cpu *Cpu) Write(addr int, value byte) {
	if addr < 0 || addr >= len(cpu.Memory) {
		return
	}
	cpu.Memory[addr] = value
}

// Peek is the external tooling view of Read.
func (cpu *Cpu) Peek(addr int) byte {
	return cpu.Read(addr)
}

// Poke is the external tooling view of Write.
func (cpu *Cpu) Poke(addr int, value byte) {
	cpu.Write(addr, value)
}

// ReadAddress decodes the 16-bit little-endian address stored at addr.
func (cpu *Cpu) ReadAddress(addr int) int {
	return int(cpu.Read(addr)) | (int(cpu.Read(addr+1)) << 8)
}

// indexed returns the B+C effective address, without 8-bit wrap.
func (cpu *Cpu) indexed() int {
	return int(cpu.Register.B) + int(cpu.Register.C)
}

// LoadProgram copies data into memory starting at start.
// Bytes that would land past the end of memory are dropped.
// Returns the number of bytes copied.
func (cpu *Cpu) LoadProgram(data []byte, start int) (n int) {
	if start < 0 || start >= len(cpu.Memory) {
		return
	}
	n = copy(cpu.Memory[start:], data)
	return
}

// Pixel returns the framebuffer cell at (x, y), or 0 when off screen.
func (cpu *Cpu) Pixel(x, y int) byte {
	if x < 0 || x >= cpu.Width || y < 0 || y >= cpu.Height {
		return 0
	}
	return cpu.Memory[VRAM_START+y*cpu.Width+x]
}

// SetPixel sets the framebuffer cell at (x, y). Off screen writes are dropped.
func (cpu *Cpu) SetPixel(x, y int, value byte) {
	if x < 0 || x >= cpu.Width || y < 0 || y >= cpu.Height {
		return
	}
	cpu.Memory[VRAM_START+y*cpu.Width+x] = value
}

// ClearVram zeroes the framebuffer.
func (cpu *Cpu) ClearVram() {
	clear(cpu.Vram())
}

// Vram returns the framebuffer region of memory.
func (cpu *Cpu) Vram() []byte {
	return cpu.Memory[VRAM_START : VRAM_START+cpu.Width*cpu.Height]
}

// Size returns the framebuffer geometry.
func (cpu *Cpu) Size() (width, height int) {
	return cpu.Width, cpu.Height
}

func saturate(value int) byte {
	switch {
	case value < 0:
		return 0
	case value > 0xff:
		return 0xff
	}
	return byte(value)
}

// Score returns the current score cell.
func (cpu *Cpu) Score() byte {
	return cpu.Memory[SCORE_ADDR]
}

// SetScore stores value into the score cell, saturating at 255.
func (cpu *Cpu) SetScore(value int) {
	cpu.Memory[SCORE_ADDR] = saturate(value)
}

// HighScore returns the high score cell.
func (cpu *Cpu) HighScore() byte {
	return cpu.Memory[HIGH_SCORE_ADDR]
}

// SetHighScore stores value into the high score cell, saturating at 255.
func (cpu *Cpu) SetHighScore(value int) {
	cpu.Memory[HIGH_SCORE_ADDR] = saturate(value)
}
