package io

import (
	"errors"

	"github.com/ezrec/gemini/translate"
)

var f = translate.From

var (
	// Input errors
	ErrInputMissing = errors.New(f("no input attached"))
)

// ErrKeyUnknown is returned for a key name with no key code.
type ErrKeyUnknown string

func (err ErrKeyUnknown) Error() string {
	return f("key %v unknown", string(err))
}
