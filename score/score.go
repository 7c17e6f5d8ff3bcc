// Package score keeps the persistent per-game high score table.
package score

import (
	"encoding/json"
	"log"
	"maps"
	"slices"

	"github.com/pkg/errors"
	"github.com/shibukawa/configdir"
)

const (
	VENDOR_NAME      = "gemini"             // configdir vendor.
	APPLICATION_NAME = "arcade"             // configdir application.
	SAVE_FILE        = "gemini_scores.json" // Table file name.
)

// HighScorer receives a high score, e.g. the CPU's HIGH_SCORE_ADDR cell.
type HighScorer interface {
	SetHighScore(value int)
}

// Table is a set of high scores, keyed by game name.
type Table struct {
	Verbose bool // If set, logs loads and saves.

	Folder *configdir.Config // Where the table is stored.

	scores map[string]int
}

// NewTable creates an empty table stored in the directory path.
func NewTable(path string) *Table {
	return &Table{
		Folder: &configdir.Config{Path: path, Type: configdir.Global},
		scores: map[string]int{},
	}
}

// Open loads the table from the user's configuration directory.
// A table that cannot be read is returned empty, along with the error.
func Open() (table *Table, err error) {
	dirs := configdir.New(VENDOR_NAME, APPLICATION_NAME)
	folder := dirs.QueryFolderContainsFile(SAVE_FILE)
	if folder == nil {
		folders := dirs.QueryFolders(configdir.Global)
		if len(folders) == 0 {
			err = ErrNoFolder
			table = &Table{scores: map[string]int{}}
			return
		}
		folder = folders[0]
	}

	table = &Table{Folder: folder, scores: map[string]int{}}
	err = table.Load()
	return
}

// Load replaces the table with the stored scores.
// A missing file is an empty table. On error the table is left empty.
func (table *Table) Load() (err error) {
	table.scores = map[string]int{}

	if table.Folder == nil {
		err = ErrNoFolder
		return
	}

	if !table.Folder.Exists(SAVE_FILE) {
		return
	}

	data, err := table.Folder.ReadFile(SAVE_FILE)
	if err != nil {
		err = errors.Wrap(err, f("could not load high scores"))
		return
	}

	scores := map[string]int{}
	err = json.Unmarshal(data, &scores)
	if err != nil {
		err = errors.Wrap(err, f("could not load high scores"))
		return
	}

	table.scores = scores

	if table.Verbose {
		log.Printf("score: loaded %d scores from %v", len(scores), table.Folder.Path)
	}

	return
}

// Save writes the table to its folder.
func (table *Table) Save() (err error) {
	if table.Folder == nil {
		err = ErrNoFolder
		return
	}

	data, err := json.MarshalIndent(table.scores, "", "  ")
	if err != nil {
		err = errors.Wrap(err, f("could not save high scores"))
		return
	}

	err = table.Folder.MkdirAll()
	if err != nil {
		err = errors.Wrap(err, f("could not save high scores"))
		return
	}

	err = table.Folder.WriteFile(SAVE_FILE, data)
	if err != nil {
		err = errors.Wrap(err, f("could not save high scores"))
		return
	}

	if table.Verbose {
		log.Printf("score: saved %d scores to %v", len(table.scores), table.Folder.Path)
	}

	return
}

// Get returns the high score for a game, 0 if none.
func (table *Table) Get(name string) int {
	return table.scores[name]
}

// Update records score for a game if it beats the current high score,
// and saves the table. Returns true if the high score changed.
func (table *Table) Update(name string, score int) (updated bool, err error) {
	if score <= table.Get(name) {
		return
	}

	table.scores[name] = score
	updated = true
	err = table.Save()
	return
}

// Names returns the games with a recorded score, sorted.
func (table *Table) Names() []string {
	return slices.Sorted(maps.Keys(table.scores))
}

// Sync copies the high score of a game into cells.
func (table *Table) Sync(name string, cells HighScorer) {
	cells.SetHighScore(table.Get(name))
}
