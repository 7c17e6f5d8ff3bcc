package cpu

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Opcode is a single instruction byte.
type Opcode byte

const (
	OP_NOP     = Opcode(0x00) // NOP
	OP_LDA_IMM = Opcode(0x01) // LDA_IMM
	OP_STA_ABS = Opcode(0x02) // STA_ABS
	OP_ADD     = Opcode(0x03) // ADD
	OP_LDB_IMM = Opcode(0x04) // LDB_IMM
	OP_CMP     = Opcode(0x05) // CMP
	OP_JMP     = Opcode(0x06) // JMP
	OP_JZ      = Opcode(0x07) // JZ
	OP_INP     = Opcode(0x08) // INP
	OP_SUB     = Opcode(0x09) // SUB
	OP_LDC_IMM = Opcode(0x0A) // LDC_IMM
	OP_LDD_IMM = Opcode(0x0B) // LDD_IMM
	OP_INC     = Opcode(0x0C) // INC
	OP_DEC     = Opcode(0x0D) // DEC
	OP_JNZ     = Opcode(0x0E) // JNZ
	OP_LDA_ABS = Opcode(0x10) // LDA_ABS
	OP_LDA_IDX = Opcode(0x11) // LDA_IDX
	OP_STA_IDX = Opcode(0x12) // STA_IDX
	OP_CALL    = Opcode(0x13) // CALL
	OP_RET     = Opcode(0x14) // RET
	OP_MOV_BA  = Opcode(0x16) // MOV_BA
	OP_MOV_AB  = Opcode(0x17) // MOV_AB
	OP_MOV_CA  = Opcode(0x18) // MOV_CA
	OP_MOV_AC  = Opcode(0x19) // MOV_AC
	OP_MOV_DA  = Opcode(0x1A) // MOV_DA
	OP_MOV_AD  = Opcode(0x1B) // MOV_AD
	OP_AND     = Opcode(0x20) // AND
	OP_OR      = Opcode(0x21) // OR
	OP_HALT    = Opcode(0xFF) // HALT
)

// OperandKind describes the bytes that follow an opcode.
type OperandKind int

const (
	OPERAND_NONE      = OperandKind(0) // no operand
	OPERAND_IMMEDIATE = OperandKind(1) // 8-bit immediate
	OPERAND_ADDRESS   = OperandKind(2) // 16-bit little-endian address
)

type opcodeInfo struct {
	mnemonic string
	operand  OperandKind
}

var _opcode_info = map[Opcode]opcodeInfo{
	OP_NOP:     {"NOP", OPERAND_NONE},
	OP_LDA_IMM: {"LDA_IMM", OPERAND_IMMEDIATE},
	OP_STA_ABS: {"STA_ABS", OPERAND_ADDRESS},
	OP_ADD:     {"ADD", OPERAND_NONE},
	OP_LDB_IMM: {"LDB_IMM", OPERAND_IMMEDIATE},
	OP_CMP:     {"CMP", OPERAND_NONE},
	OP_JMP:     {"JMP", OPERAND_ADDRESS},
	OP_JZ:      {"JZ", OPERAND_ADDRESS},
	OP_INP:     {"INP", OPERAND_NONE},
	OP_SUB:     {"SUB", OPERAND_NONE},
	OP_LDC_IMM: {"LDC_IMM", OPERAND_IMMEDIATE},
	OP_LDD_IMM: {"LDD_IMM", OPERAND_IMMEDIATE},
	OP_INC:     {"INC", OPERAND_NONE},
	OP_DEC:     {"DEC", OPERAND_NONE},
	OP_JNZ:     {"JNZ", OPERAND_ADDRESS},
	OP_LDA_ABS: {"LDA_ABS", OPERAND_ADDRESS},
	OP_LDA_IDX: {"LDA_IDX", OPERAND_NONE},
	OP_STA_IDX: {"STA_IDX", OPERAND_NONE},
	OP_CALL:    {"CALL", OPERAND_ADDRESS},
	OP_RET:     {"RET", OPERAND_NONE},
	OP_MOV_BA:  {"MOV_BA", OPERAND_NONE},
	OP_MOV_AB:  {"MOV_AB", OPERAND_NONE},
	OP_MOV_CA:  {"MOV_CA", OPERAND_NONE},
	OP_MOV_AC:  {"MOV_AC", OPERAND_NONE},
	OP_MOV_DA:  {"MOV_DA", OPERAND_NONE},
	OP_MOV_AD:  {"MOV_AD", OPERAND_NONE},
	OP_AND:     {"AND", OPERAND_NONE},
	OP_OR:      {"OR", OPERAND_NONE},
	OP_HALT:    {"HALT", OPERAND_NONE},
}

var _opcode_mnemonic = func() map[string]Opcode {
	m := make(map[string]Opcode, len(_opcode_info))
	for op, info := range _opcode_info {
		m[info.mnemonic] = op
	}
	return m
}()

// Defined returns true if the opcode is part of the instruction set.
func (op Opcode) Defined() bool {
	_, ok := _opcode_info[op]
	return ok
}

// Operand returns the operand kind for the opcode.
// Undefined opcodes have no operand.
func (op Opcode) Operand() OperandKind {
	return _opcode_info[op].operand
}

// Size returns the encoded length of the instruction, including the opcode.
func (op Opcode) Size() int {
	switch op.Operand() {
	case OPERAND_IMMEDIATE:
		return 2
	case OPERAND_ADDRESS:
		return 3
	}
	return 1
}

func (op Opcode) String() string {
	info, ok := _opcode_info[op]
	if !ok {
		return fmt.Sprintf("Opcode(%#02x)", byte(op))
	}
	return info.mnemonic
}

// OpcodeOf looks up an opcode by its (case insensitive) mnemonic.
func OpcodeOf(mnemonic string) (op Opcode, ok bool) {
	op, ok = _opcode_mnemonic[strings.ToUpper(mnemonic)]
	return
}

// Opcodes iterates over the defined opcodes in ascending byte order.
func Opcodes() iter.Seq[Opcode] {
	ops := make([]Opcode, 0, len(_opcode_info))
	for op := range _opcode_info {
		ops = append(ops, op)
	}
	slices.Sort(ops)

	return slices.Values(ops)
}

// InstructionSetSize returns the number of defined opcodes.
func InstructionSetSize() int {
	return len(_opcode_info)
}
