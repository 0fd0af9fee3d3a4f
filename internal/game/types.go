// internal/game/types.go
//
// Core type definitions for the word derivation engine.
// Defines:
//   - Session: starting word plus the history of accepted words.
//   - Outcome/Result: the verdict for a single submission.
//   - SpellChecker: the dictionary capability the engine queries.

package game

// Session holds the state of a single game.
// UsedWords is ordered most-recent first.
type Session struct {
	StartingWord string   `json:"startingWord"` // Always lowercase; empty until a game starts.
	UsedWords    []string `json:"usedWords"`    // Accepted words, lowercased and unique.
}

// Outcome represents the verdict for a submitted word.
// Possible values:
//   - "accepted":      word was added to the session.
//   - "too_short":     three letters or fewer.
//   - "not_real":      the spell checker does not know the word.
//   - "not_possible":  the word cannot be built from the starting word's letters.
//   - "already_used":  the word was accepted earlier in this session.
//   - "same_as_start": the word is the starting word itself.
type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeTooShort    Outcome = "too_short"
	OutcomeNotReal     Outcome = "not_real"
	OutcomeNotPossible Outcome = "not_possible"
	OutcomeAlreadyUsed Outcome = "already_used"
	OutcomeSameAsStart Outcome = "same_as_start"
)

// Result is the value returned by Engine.Submit.
// Word is only set when accepted; StartingWord only when not possible.
type Result struct {
	Outcome      Outcome `json:"outcome"`
	Word         string  `json:"word,omitempty"`
	StartingWord string  `json:"startingWord,omitempty"`
}

// Accepted reports whether the submission was added to the session.
func (r Result) Accepted() bool { return r.Outcome == OutcomeAccepted }

// SpellChecker answers whether a word is a real dictionary word for a locale.
// Implementations must answer synchronously.
type SpellChecker interface {
	IsValidWord(word, locale string) bool
}

// SpellCheckerFunc adapts a plain function to SpellChecker.
type SpellCheckerFunc func(word, locale string) bool

// IsValidWord calls f(word, locale).
func (f SpellCheckerFunc) IsValidWord(word, locale string) bool { return f(word, locale) }
