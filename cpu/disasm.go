package cpu

import (
	"fmt"
)

// Disassemble returns the assembly text of the instruction at addr,
// and its encoded size. Undefined opcodes are shown as a .byte directive.
func (cpu *Cpu) Disassemble(addr int) (text string, size int) {
	op := Opcode(cpu.Read(addr))
	size = op.Size()

	if !op.Defined() {
		text = fmt.Sprintf(".byte %#02x", byte(op))
		return
	}

	switch op.Operand() {
	case OPERAND_IMMEDIATE:
		text = fmt.Sprintf("%v %#02x", op, cpu.Read(addr+1))
	case OPERAND_ADDRESS:
		text = fmt.Sprintf("%v %#04x", op, cpu.ReadAddress(addr+1))
	default:
		text = op.String()
	}

	return
}
