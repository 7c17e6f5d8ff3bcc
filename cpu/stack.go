package cpu

// Push16 pushes a 16-bit value onto the descending stack.
// The low byte is written at SP, then the high byte one below it.
func (cpu *Cpu) Push16(value int) {
	cpu.Write(int(cpu.Register.SP), byte(value&0xff))
	cpu.Register.SP--
	cpu.Write(int(cpu.Register.SP), byte((value>>8)&0xff))
	cpu.Register.SP--
}

// Pop16 pops a 16-bit value pushed by Push16.
func (cpu *Cpu) Pop16() (value int) {
	cpu.Register.SP++
	high := cpu.Read(int(cpu.Register.SP))
	cpu.Register.SP++
	low := cpu.Read(int(cpu.Register.SP))

	value = (int(high) << 8) | int(low)
	return
}
