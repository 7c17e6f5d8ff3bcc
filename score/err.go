package score

import (
	"errors"

	"github.com/ezrec/gemini/translate"
)

var f = translate.From

var (
	ErrNoFolder = errors.New(f("no high score folder"))
)
