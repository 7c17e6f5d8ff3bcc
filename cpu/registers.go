package cpu

import (
	"fmt"
)

// Registers is the GEMINI-1 register file.
type Registers struct {
	A, B, C, D byte // General-purpose registers.

	PC int  // Program counter. Not limited to 16 bits.
	SP byte // Stack pointer, wraps modulo 256.

	Zero  bool // Zero flag.
	Carry bool // Carry flag.
}

// PowerOn returns the register file at power on.
func PowerOn() Registers {
	return Registers{SP: STACK_TOP}
}

func flag(set bool) byte {
	if set {
		return 1
	}
	return 0
}

func (reg Registers) String() string {
	return fmt.Sprintf("A=%02X B=%02X C=%02X D=%02X PC=%04X SP=%02X Z=%d C=%d",
		reg.A, reg.B, reg.C, reg.D, reg.PC, reg.SP, flag(reg.Zero), flag(reg.Carry))
}
