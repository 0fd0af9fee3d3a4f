// internal/words/words.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Load the starting-word pool and the dictionary from files or embedded defaults.
//   - Keep the dictionary as a set for constant-time membership tests.
//   - Serve as the engine's SpellChecker (IsValidWord).
//
// Word Lists:
//   - "start":      candidate starting words, one per line.
//   - "dictionary": every word a player may submit (always includes the start words).
//
// Load behavior:
//   1. A non-empty Sources path is read from disk.
//   2. Otherwise the embedded assets/start.txt or assets/dictionary.txt is used.
//
// Constraints:
//   • Lines are trimmed and lowercased; blank lines and '#' comments are dropped.
//   • An empty start pool is allowed (the engine falls back to its default word).
//   • An empty dictionary is an error.

package words

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/robalobadob/wordsmith/assets"
	"github.com/robalobadob/wordsmith/internal/game"
)

// ErrEmptyDictionary is returned by Load when no dictionary words were found.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// Sources names optional files overriding the embedded lists.
type Sources struct {
	StartFile      string
	DictionaryFile string
}

var _ game.SpellChecker = (*List)(nil)

// List holds the loaded starting-word pool and dictionary.
// It is read-only after Load and safe for concurrent use.
type List struct {
	start      []string
	dictionary map[string]struct{}
}

// Load reads both lists according to src.
func Load(src Sources) (*List, error) {
	start, err := load(src.StartFile, assets.StartList)
	if err != nil {
		return nil, fmt.Errorf("load start words: %w", err)
	}
	dict, err := load(src.DictionaryFile, assets.DictionaryList)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return New(start, dict)
}

// New builds a List from in-memory slices. Start words are added to the dictionary.
func New(start, dictionary []string) (*List, error) {
	l := &List{
		start:      compact(start),
		dictionary: make(map[string]struct{}, len(dictionary)+len(start)),
	}
	for _, w := range dictionary {
		if w = game.Normalize(w); w != "" {
			l.dictionary[w] = struct{}{}
		}
	}
	for _, w := range l.start {
		l.dictionary[w] = struct{}{}
	}
	if len(l.dictionary) == 0 {
		return nil, ErrEmptyDictionary
	}
	return l, nil
}

// load reads path if set, otherwise falls back to the embedded list.
func load(path string, embedded func() ([]string, error)) ([]string, error) {
	if path == "" {
		return embedded()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// compact lowercases and de-duplicates words, keeping first-seen order.
func compact(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, w := range list {
		w = game.Normalize(w)
		if _, dup := seen[w]; w == "" || dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Pool returns a copy of the starting-word pool.
func (l *List) Pool() []string { return slices.Clone(l.start) }

// IsValidWord reports whether word is in the dictionary.
// Only the English locale is supported; anything else is reported invalid.
func (l *List) IsValidWord(word, locale string) bool {
	if locale != game.Locale {
		return false
	}
	_, ok := l.dictionary[game.Normalize(word)]
	return ok
}

// Stats returns counts of loaded words: (start pool, dictionary).
func (l *List) Stats() (startCount int, dictionaryCount int) {
	return len(l.start), len(l.dictionary)
}
