package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// Key is a symbolic key code, as delivered to the pending input register.
// Printable keys are their lower case ASCII value.
type Key byte

const (
	KEY_NONE  = Key(0x00) // NONE
	KEY_UP    = Key(0x80) // UP
	KEY_DOWN  = Key(0x81) // DOWN
	KEY_RIGHT = Key(0x82) // RIGHT
	KEY_LEFT  = Key(0x83) // LEFT
	KEY_FIRE  = Key(' ')  // FIRE
	KEY_PAUSE = Key('p')  // PAUSE
	KEY_RESET = Key('r')  // RESET
	KEY_QUIT  = Key('q')  // QUIT
)

var _key_names = map[Key]string{
	KEY_NONE:  "NONE",
	KEY_UP:    "UP",
	KEY_DOWN:  "DOWN",
	KEY_RIGHT: "RIGHT",
	KEY_LEFT:  "LEFT",
	KEY_FIRE:  "FIRE",
	KEY_PAUSE: "PAUSE",
	KEY_RESET: "RESET",
	KEY_QUIT:  "QUIT",
}

func (key Key) String() string {
	name, ok := _key_names[key]
	if ok {
		return name
	}
	if key < 0x80 && unicode.IsPrint(rune(key)) {
		return fmt.Sprintf("'%c'", rune(key))
	}
	return fmt.Sprintf("Key(%#02x)", byte(key))
}

// KeyOf returns the key for a symbolic name (UP, DOWN, ...), case insensitive.
func KeyOf(name string) (key Key, err error) {
	name = strings.ToUpper(name)
	for k, n := range _key_names {
		if n == name {
			key = k
			return
		}
	}

	err = ErrKeyUnknown(name)
	return
}

// KeyNames returns the symbolic key names, sorted.
func KeyNames() []string {
	return slices.Sorted(maps.Values(_key_names))
}

// Defines returns the KEY_* assembler equates.
func Defines() iter.Seq2[string, string] {
	defines := make(map[string]string, len(_key_names))
	for key, name := range _key_names {
		defines["KEY_"+name] = fmt.Sprintf("%#x", byte(key))
	}
	return maps.All(defines)
}

// Keyboard translates a terminal byte stream into keys.
//
//   - ESC [ A/B/C/D and ESC O A/B/C/D are the arrow keys, with or without
//     CSI modifier parameters.
//   - 0xE0 H/P/K/M are the arrow keys (PC console scan codes).
//   - Ctrl-C is QUIT.
//   - Other escape sequences, and a lone ESC, are skipped.
//   - Everything else is its lower cased byte value.
type Keyboard struct {
	in *bufio.Reader
}

// NewKeyboard creates a keyboard reading from r.
func NewKeyboard(r io.Reader) *Keyboard {
	return &Keyboard{in: bufio.NewReader(r)}
}

var _ansi_arrows = map[byte]Key{'A': KEY_UP, 'B': KEY_DOWN, 'C': KEY_RIGHT, 'D': KEY_LEFT}
var _scan_arrows = map[byte]Key{'H': KEY_UP, 'P': KEY_DOWN, 'M': KEY_RIGHT, 'K': KEY_LEFT}

// escape reads the remainder of a sequence started by ESC.
// Returns ok if the sequence was an arrow key.
func (kb *Keyboard) escape() (key Key, ok bool, err error) {
	c, err := kb.in.ReadByte()
	if err != nil {
		return
	}

	switch c {
	case '[':
		// CSI: parameter and intermediate bytes, then a final byte.
		for {
			c, err = kb.in.ReadByte()
			if err != nil {
				return
			}
			if c >= 0x40 && c <= 0x7e {
				break
			}
			if c < 0x20 || c > 0x3f {
				// Not a CSI byte; let it be read as a key.
				err = kb.in.UnreadByte()
				return
			}
		}
	case 'O':
		// SS3: a single final byte.
		c, err = kb.in.ReadByte()
		if err != nil {
			return
		}
	default:
		// Lone ESC.
		err = kb.in.UnreadByte()
		return
	}

	key, ok = _ansi_arrows[c]
	return
}

// ReadKey returns the next recognized key.
// Unrecognized escape sequences are skipped.
func (kb *Keyboard) ReadKey() (key Key, err error) {
	for {
		var c byte
		c, err = kb.in.ReadByte()
		if err != nil {
			return
		}

		switch c {
		case 0x1b:
			var ok bool
			key, ok, err = kb.escape()
			if err != nil || ok {
				return
			}
		case 0xe0:
			var next byte
			next, err = kb.in.ReadByte()
			if err != nil {
				return
			}
			arrow, ok := _scan_arrows[next]
			if ok {
				key = arrow
				return
			}
		case 0x03:
			key = KEY_QUIT
			return
		default:
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			key = Key(c)
			return
		}
	}
}

// Keys iterates over the keys until the stream ends.
func (kb *Keyboard) Keys() iter.Seq[Key] {
	return func(yield func(key Key) bool) {
		for {
			key, err := kb.ReadKey()
			if err != nil {
				return
			}
			if !yield(key) {
				return
			}
		}
	}
}
