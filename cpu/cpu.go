package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

// Cpu is the simulation context for the GEMINI-1 processor and its memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register Registers // Register file.
	Memory   []byte    // Program, stack, score cells and framebuffer.

	Width  int // Framebuffer width in cells.
	Height int // Framebuffer height in cells.

	Running bool // Cleared by HALT, or by running off the end of memory.
	Ticks   int  // Executed instruction counter.

	pending byte // Pending input byte, 0 if none.
}

// NewCpu creates a new CPU with a width x height framebuffer.
func NewCpu(width, height int) (cpu *Cpu, err error) {
	if width <= 0 || height <= 0 {
		err = ErrGeometry
		return
	}

	cpu = &Cpu{
		Width:    width,
		Height:   height,
		Memory:   make([]byte, MemorySize(width, height)),
		Register: PowerOn(),
		Running:  true,
	}

	return
}

// Defines for the cpu memory layout.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_layout_defines)
	defines["VRAM_WIDTH"] = fmt.Sprintf("%d", cpu.Width)
	defines["VRAM_HEIGHT"] = fmt.Sprintf("%d", cpu.Height)
	defines["VRAM_SIZE"] = fmt.Sprintf("%d", cpu.Width*cpu.Height)
	defines["MEMORY_SIZE"] = fmt.Sprintf("%d", len(cpu.Memory))
	return maps.All(defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"a", "b", "c", "d", "pc", "sp", "zero", "carry", "input", "state"}
	reg := &cpu.Register
	for _, name := range regs {
		var strval string
		switch name {
		case "a":
			strval = fmt.Sprintf("%02X", reg.A)
		case "b":
			strval = fmt.Sprintf("%02X", reg.B)
		case "c":
			strval = fmt.Sprintf("%02X", reg.C)
		case "d":
			strval = fmt.Sprintf("%02X", reg.D)
		case "pc":
			strval = fmt.Sprintf("%04X", reg.PC)
		case "sp":
			strval = fmt.Sprintf("%02X", reg.SP)
		case "zero":
			strval = fmt.Sprintf("%v", reg.Zero)
		case "carry":
			strval = fmt.Sprintf("%v", reg.Carry)
		case "input":
			strval = fmt.Sprintf("%02X", cpu.pending)
		case "state":
			strval = "halted"
			if cpu.Running {
				strval = "running"
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", name, strval)
	}

	return
}

// Reset the CPU state.
// - Restores the power on register file.
// - Clears pending input and the tick counter.
// - Resumes execution.
// Memory is left untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Register = PowerOn()
	cpu.pending = 0
	cpu.Ticks = 0
	cpu.Running = true
}

// SetPendingInput latches one input byte for the next INP.
// A second call before INP replaces the first.
func (cpu *Cpu) SetPendingInput(value byte) {
	cpu.pending = value
}

// PendingInput returns the latched input byte, 0 if none.
// An injected zero byte cannot be told apart from no input.
func (cpu *Cpu) PendingInput() byte {
	return cpu.pending
}

// Halted returns true when the CPU no longer executes instructions.
func (cpu *Cpu) Halted() bool {
	return !cpu.Running
}

// Step executes a single instruction.
//
// Stepping a halted CPU does nothing. A program counter at or past the end
// of memory halts the CPU without fetching or counting a tick.
func (cpu *Cpu) Step() {
	if !cpu.Running {
		return
	}

	reg := &cpu.Register
	pc := reg.PC
	if pc < 0 || pc >= len(cpu.Memory) {
		cpu.Running = false
		if cpu.Verbose {
			log.Printf("cpu: pc %04x out of memory, stopped", pc)
		}
		return
	}

	if cpu.Verbose {
		text, _ := cpu.Disassemble(pc)
		log.Printf("%04x: %v", pc, text)
	}

	op := Opcode(cpu.Memory[pc])
	cpu.Ticks++

	next_pc := pc + op.Size()

	switch op {
	case OP_NOP:
		// pass
	case OP_LDA_IMM:
		reg.A = cpu.Read(pc + 1)
	case OP_LDB_IMM:
		reg.B = cpu.Read(pc + 1)
	case OP_LDC_IMM:
		reg.C = cpu.Read(pc + 1)
	case OP_LDD_IMM:
		reg.D = cpu.Read(pc + 1)
	case OP_STA_ABS:
		cpu.Write(cpu.ReadAddress(pc+1), reg.A)
	case OP_LDA_ABS:
		addr := cpu.ReadAddress(pc + 1)
		if addr < len(cpu.Memory) {
			reg.A = cpu.Memory[addr]
		}
	case OP_LDA_IDX:
		addr := cpu.indexed()
		if addr < len(cpu.Memory) {
			reg.A = cpu.Memory[addr]
		}
	case OP_STA_IDX:
		cpu.Write(cpu.indexed(), reg.A)
	case OP_ADD:
		result := int(reg.A) + int(reg.B)
		reg.Carry = result > 0xff
		cpu.setA(byte(result & 0xff))
	case OP_SUB:
		result := int(reg.A) - int(reg.B)
		reg.Carry = result < 0
		cpu.setA(byte(result & 0xff))
	case OP_AND:
		cpu.setA(reg.A & reg.B)
	case OP_OR:
		cpu.setA(reg.A | reg.B)
	case OP_INC:
		cpu.setA(reg.A + 1)
	case OP_DEC:
		cpu.setA(reg.A - 1)
	case OP_CMP:
		reg.Zero = reg.A == reg.B
	case OP_JMP:
		next_pc = cpu.ReadAddress(pc + 1)
	case OP_JZ:
		if reg.Zero {
			next_pc = cpu.ReadAddress(pc + 1)
		}
	case OP_JNZ:
		if !reg.Zero {
			next_pc = cpu.ReadAddress(pc + 1)
		}
	case OP_CALL:
		cpu.Push16(pc + 3)
		next_pc = cpu.ReadAddress(pc + 1)
	case OP_RET:
		next_pc = cpu.Pop16()
	case OP_MOV_BA:
		reg.B = reg.A
	case OP_MOV_AB:
		reg.A = reg.B
	case OP_MOV_CA:
		reg.C = reg.A
	case OP_MOV_AC:
		reg.A = reg.C
	case OP_MOV_DA:
		reg.D = reg.A
	case OP_MOV_AD:
		reg.A = reg.D
	case OP_INP:
		reg.A = cpu.pending
		cpu.pending = 0
	case OP_HALT:
		cpu.Running = false
		next_pc = pc
	default:
		// Undefined opcodes are one byte no-ops.
	}

	reg.PC = next_pc
}

// setA writes register A and recomputes the zero flag.
func (cpu *Cpu) setA(value byte) {
	cpu.Register.A = value
	cpu.Register.Zero = value == 0
}

// Run steps the CPU until it halts or limit instructions have executed.
// A limit <= 0 means no limit. Returns the number of instructions executed.
func (cpu *Cpu) Run(limit int) (steps int) {
	for cpu.Running && (limit <= 0 || steps < limit) {
		ticks := cpu.Ticks
		cpu.Step()
		if cpu.Ticks != ticks {
			steps++
		}
	}

	return
}
