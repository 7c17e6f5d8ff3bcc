package cpu

import (
	"iter"
)

// Statement is a line of assembled code with its source location and generated bytes.
type Statement struct {
	LineNo    int      // Source line number.
	Addr      int      // Load address of the first byte.
	Words     []string // Source words, after substitution.
	Bytes     []byte   // Encoded bytes.
	LinkLabel string   // Label to resolve into the trailing address operand.
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

// Loader accepts a block of bytes at an address.
type Loader interface {
	LoadProgram(data []byte, start int) (n int)
}

type Debug struct {
	*Statement
	Index int
}

// Debug finds the statement that encoded the byte at addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+len(st.Bytes) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     addr - st.Addr,
			}
			break
		}
	}

	return
}

// Codes iterates over every encoded byte and its address.
func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(addr int, code byte) bool) {
		for _, st := range prog.Statements {
			for n, code := range st.Bytes {
				if !yield(st.Addr+n, code) {
					return
				}
			}
		}
	}
}

// Entry returns the address of the first encoded statement.
func (prog *Program) Entry() int {
	for _, st := range prog.Statements {
		if len(st.Bytes) > 0 {
			return st.Addr
		}
	}

	return 0
}

// Binary returns a flat image of the program and the address it starts at.
// Gaps between statements are zero filled.
func (prog *Program) Binary() (origin int, image []byte) {
	end := 0
	origin = -1
	for _, st := range prog.Statements {
		if len(st.Bytes) == 0 {
			continue
		}
		if origin < 0 || st.Addr < origin {
			origin = st.Addr
		}
		end = max(end, st.Addr+len(st.Bytes))
	}

	if origin < 0 {
		origin = 0
		return
	}

	image = make([]byte, end-origin)
	for addr, code := range prog.Codes() {
		image[addr-origin] = code
	}

	return
}

// Load copies every statement into mem. Returns the number of bytes loaded.
func (prog *Program) Load(mem Loader) (n int) {
	for _, st := range prog.Statements {
		n += mem.LoadProgram(st.Bytes, st.Addr)
	}

	return
}
