// Package cpu implements the GEMINI-1 microprocessor and its assembler.
//
// The CPU is an 8-bit machine with four general-purpose registers (A-D), a
// program counter, a descending 8-bit stack pointer, and zero and carry
// flags. Memory is a single flat byte array that also holds the score
// cells and the framebuffer, which are the machine's only output devices.
// Input arrives through a single pending-input register read by INP.
//
// The processor is permissive: unknown opcodes are single byte
// no-ops, and memory accesses outside the array read as zero and drop
// writes. Step never fails.
//
// The assembler provides a line-oriented assembly language for the
// instruction set, with macros and compile-time expression evaluation.
package cpu
