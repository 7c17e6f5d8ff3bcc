package io

import (
	"bufio"
	"io"
)

// Tape feeds an input stream into a CPU's pending input register,
// one byte per INP. By default the stream is decoded as keyboard input;
// Raw feeds bytes verbatim.
type Tape struct {
	Input io.Reader
	Raw   bool

	source   io.Reader // Input the buffers below were built on.
	keyboard *Keyboard
	raw      *bufio.Reader
	eof      bool
}

// Rewind clears the end of input condition. A tape cannot seek, so input
// already read ahead stays buffered; replacing Input discards it.
func (tc *Tape) Rewind() {
	tc.eof = false
}

// Done returns true once the input stream is exhausted.
func (tc *Tape) Done() bool {
	return tc.eof
}

func (tc *Tape) next() (value byte, err error) {
	if tc.source != tc.Input {
		tc.source = tc.Input
		tc.keyboard = nil
		tc.raw = nil
	}

	if tc.Raw {
		if tc.raw == nil {
			tc.raw = bufio.NewReader(tc.Input)
		}
		return tc.raw.ReadByte()
	}

	if tc.keyboard == nil {
		tc.keyboard = NewKeyboard(tc.Input)
	}

	key, err := tc.keyboard.ReadKey()
	value = byte(key)
	return
}

// Feed latches the next input byte into target, if target has no input pending.
// Returns true if a byte was latched. Returns io.EOF once Input is exhausted.
func (tc *Tape) Feed(target Input) (fed bool, err error) {
	if tc.Input == nil {
		err = ErrInputMissing
		return
	}
	if tc.eof {
		err = io.EOF
		return
	}
	if target.PendingInput() != 0 {
		return
	}

	value, err := tc.next()
	if err != nil {
		if err == io.EOF {
			tc.eof = true
		}
		return
	}

	target.SetPendingInput(value)
	fed = true
	return
}
