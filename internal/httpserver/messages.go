package httpserver

import (
	"fmt"

	"github.com/robalobadob/wordsmith/internal/game"
)

// alert is the user-facing text for a rejected submission.
type alert struct {
	Title   string
	Message string
}

// alertFor renders a rejection; accepted results have no alert.
func alertFor(res game.Result) (alert, bool) {
	switch res.Outcome {
	case game.OutcomeTooShort:
		return alert{"Word is too short", "Please choose a word longer than three letters."}, true
	case game.OutcomeNotReal:
		return alert{"Word not recognized", "Please check your spelling and try again."}, true
	case game.OutcomeNotPossible:
		return alert{"Word not possible", fmt.Sprintf("That word cannot be formed from %s.", res.StartingWord)}, true
	case game.OutcomeAlreadyUsed:
		return alert{"Word already used", "Try to create a new word not already used."}, true
	case game.OutcomeSameAsStart:
		return alert{"Answer is same as starting word", "Please try a different word that isn't the same as the starting word."}, true
	}
	return alert{}, false
}
