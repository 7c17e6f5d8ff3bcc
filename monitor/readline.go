package monitor

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"

	gio "github.com/ezrec/gemini/io"
	"github.com/ezrec/gemini/score"
)

const HISTORY_FILE = "monitor_history"

// HistoryPath returns the monitor history file, in the user cache folder.
func HistoryPath() string {
	dirs := configdir.New(score.VENDOR_NAME, score.APPLICATION_NAME)
	cache := dirs.QueryCacheFolder()
	err := cache.MkdirAll()
	if err != nil {
		return ""
	}
	return filepath.Join(cache.Path, HISTORY_FILE)
}

// Completer offers command names, and key names after INPUT.
func Completer() readline.AutoCompleter {
	var keys []readline.PrefixCompleterInterface
	for _, name := range gio.KeyNames() {
		keys = append(keys, readline.PcItem(name))
	}

	var items []readline.PrefixCompleterInterface
	for name := range Commands() {
		switch name {
		case "INPUT":
			items = append(items, readline.PcItem(name, keys...))
		default:
			items = append(items, readline.PcItem(name))
		}
	}

	return readline.NewPrefixCompleter(items...)
}

// Interact runs the shell on the terminal, with line editing and history.
func (sh *Shell) Interact() (err error) {
	prompt := "GEMINI> "
	if sh.Color {
		prompt = sh.paint("GEMINI", "green+h") + sh.paint("> ", "cyan+h")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     HistoryPath(),
		AutoComplete:    Completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          sh.Out,
	})
	if err != nil {
		err = errors.Wrap(err, "monitor")
		return
	}
	defer rl.Close()

	err = sh.Run(&lineReader{rl})
	return
}

type lineReader struct {
	*readline.Instance
}

// Readline treats an interrupt as end of input.
func (lr *lineReader) Readline() (line string, err error) {
	line, err = lr.Instance.Readline()
	if err == readline.ErrInterrupt {
		err = io.EOF
	}
	line = strings.TrimRight(line, "\r\n")
	return
}
