// internal/game/engine.go
//
// Core engine for a single word derivation session.
// Responsibilities:
//   - Start sessions from a pool of candidate starting words.
//   - Run the submission rule pipeline in a fixed order.
//   - Record accepted words, most recent first.
//
// Notes:
//   - The dictionary is an injected SpellChecker; the engine never loads words itself.
//   - Rejections are values (Result), never errors, and never mutate the session.
//   - An Engine is not safe for concurrent use; callers serialize access.
package game

import (
	"crypto/rand"
	"math/big"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Locale is the language passed to the spell checker.
	Locale = "en"

	// DefaultStartingWord is used when the pool has no usable words.
	DefaultStartingWord = "silkworm"

	minLetters = 4
)

// Engine owns one Session and applies submissions to it.
type Engine struct {
	checker SpellChecker
	pick    func(n int) int
	session Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithPicker replaces the random index source used by StartGame.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(e *Engine) { e.pick = pick }
}

// New constructs an Engine that validates words with checker.
// The engine has no session until StartGame, StartWith or Restore is called.
func New(checker SpellChecker, opts ...Option) *Engine {
	e := &Engine{checker: checker, pick: randomIndex}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartGame draws a starting word uniformly from pool and clears history.
// Blank entries are ignored; an empty pool falls back to DefaultStartingWord.
func (e *Engine) StartGame(pool []string) Session {
	words := make([]string, 0, len(pool))
	for _, w := range pool {
		if w = Normalize(strings.TrimSpace(w)); w != "" {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		words = []string{DefaultStartingWord}
	}
	return e.StartWith(words[e.pick(len(words))])
}

// StartWith starts a session on a fixed starting word.
// An empty word behaves like StartGame(nil).
func (e *Engine) StartWith(word string) Session {
	word = Normalize(word)
	if word == "" {
		word = DefaultStartingWord
	}
	e.session = Session{StartingWord: word, UsedWords: []string{}}
	return e.Session()
}

// Submit validates candidate against the session and records it when accepted.
//
// Rules, evaluated in order; the first failure decides the outcome:
//  1. More than three letters (counted in runes, after lowercasing).
//  2. Known to the spell checker.
//  3. Buildable from the starting word's letters.
//  4. Not already used this session.
//  5. Not the starting word itself.
func (e *Engine) Submit(candidate string) Result {
	word := Normalize(candidate)

	if utf8.RuneCountInString(word) < minLetters {
		return Result{Outcome: OutcomeTooShort}
	}
	if e.checker == nil || !e.checker.IsValidWord(word, Locale) {
		return Result{Outcome: OutcomeNotReal}
	}
	if !IsPossible(word, e.session.StartingWord) {
		return Result{Outcome: OutcomeNotPossible, StartingWord: e.session.StartingWord}
	}
	if slices.Contains(e.session.UsedWords, word) {
		return Result{Outcome: OutcomeAlreadyUsed}
	}
	if word == e.session.StartingWord {
		return Result{Outcome: OutcomeSameAsStart}
	}

	e.session.UsedWords = slices.Insert(e.session.UsedWords, 0, word)
	return Result{Outcome: OutcomeAccepted, Word: word}
}

// Session returns a copy of the current session for rendering.
func (e *Engine) Session() Session {
	used := slices.Clone(e.session.UsedWords)
	if used == nil {
		used = []string{}
	}
	return Session{StartingWord: e.session.StartingWord, UsedWords: used}
}

// IsPossible reports whether word can be spelled from start's letters,
// using each letter of start at most once.
//
// Each rune of word consumes one matching rune from a working copy of start;
// the check fails as soon as a rune has nothing left to consume.
func IsPossible(word, start string) bool {
	pool := []rune(start)
	for _, r := range word {
		i := slices.Index(pool, r)
		if i < 0 {
			return false
		}
		pool = slices.Delete(pool, i, i+1)
	}
	return true
}

// Normalize lowercases s using English case mapping.
// A Caser carries state, so each call gets its own.
func Normalize(s string) string { return cases.Lower(language.English).String(s) }

// randomIndex returns a cryptographically random index in [0, n).
func randomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}
