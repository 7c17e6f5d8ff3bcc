// Package io provides the input side of the GEMINI-1 machine.
// It translates terminal byte streams into symbolic keys (Keyboard) and
// feeds them, one at a time, into the CPU's pending input register (Tape).
package io

// Input is the pending input register of a CPU.
type Input interface {
	// SetPendingInput latches a byte for the next INP instruction.
	SetPendingInput(value byte)
	// PendingInput returns the latched byte, 0 if none.
	PendingInput() byte
}
