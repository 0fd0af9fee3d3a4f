// internal/game/snapshot.go
//
// Serializable session snapshots.
// A Snapshot holds two JSON blobs, one per persisted key, so a key-value
// store can save them independently:
//   - "startingWord": a JSON string.
//   - "usedWords":    a JSON array of strings, most recent first.

package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"
)

// Keys under which a snapshot is persisted.
const (
	KeyStartingWord = "startingWord"
	KeyUsedWords    = "usedWords"
)

var (
	// ErrNoSnapshot means one of the snapshot keys is missing.
	ErrNoSnapshot = errors.New("game: no saved session")

	// ErrMalformedSnapshot means the saved data could not be decoded or
	// does not describe a valid session.
	ErrMalformedSnapshot = errors.New("game: malformed saved session")
)

// Snapshot maps persisted keys to their encoded values.
type Snapshot map[string][]byte

// Keys lists the keys every complete snapshot carries.
func Keys() []string { return []string{KeyStartingWord, KeyUsedWords} }

// Snapshot encodes the current session.
func (e *Engine) Snapshot() (Snapshot, error) {
	s := e.Session()
	word, err := json.Marshal(s.StartingWord)
	if err != nil {
		return nil, fmt.Errorf("encode starting word: %w", err)
	}
	used, err := json.Marshal(s.UsedWords)
	if err != nil {
		return nil, fmt.Errorf("encode used words: %w", err)
	}
	return Snapshot{KeyStartingWord: word, KeyUsedWords: used}, nil
}

// Restore replaces the session with the one encoded in snap.
// On error the current session is left unchanged; callers usually fall back
// to StartGame.
func (e *Engine) Restore(snap Snapshot) error {
	s, err := DecodeSnapshot(snap)
	if err != nil {
		return err
	}
	e.session = s
	return nil
}

// DecodeSnapshot decodes and validates snap without touching any engine.
func DecodeSnapshot(snap Snapshot) (Session, error) {
	rawWord, okWord := snap[KeyStartingWord]
	rawUsed, okUsed := snap[KeyUsedWords]
	if !okWord || !okUsed {
		return Session{}, ErrNoSnapshot
	}

	var s Session
	if err := json.Unmarshal(rawWord, &s.StartingWord); err != nil {
		return Session{}, fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, KeyStartingWord, err)
	}
	if err := json.Unmarshal(rawUsed, &s.UsedWords); err != nil {
		return Session{}, fmt.Errorf("%w: %s: %v", ErrMalformedSnapshot, KeyUsedWords, err)
	}
	if s.UsedWords == nil {
		s.UsedWords = []string{}
	}
	if err := validate(s); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return s, nil
}

// validate checks the invariants a restored session must hold.
// Dictionary membership is not rechecked. The letter rules are, so a snapshot
// whose two keys were written for different sessions is rejected.
func validate(s Session) error {
	if s.StartingWord == "" {
		return errors.New("empty starting word")
	}
	if Normalize(s.StartingWord) != s.StartingWord {
		return fmt.Errorf("starting word %q is not lowercase", s.StartingWord)
	}
	for i, w := range s.UsedWords {
		switch {
		case utf8.RuneCountInString(w) < minLetters:
			return fmt.Errorf("used word %d (%q) is too short", i, w)
		case Normalize(w) != w:
			return fmt.Errorf("used word %q is not lowercase", w)
		case slices.Contains(s.UsedWords[:i], w):
			return fmt.Errorf("used word %q appears twice", w)
		case w == s.StartingWord || !IsPossible(w, s.StartingWord):
			return fmt.Errorf("used word %q does not derive from %q", w, s.StartingWord)
		}
	}
	return nil
}
