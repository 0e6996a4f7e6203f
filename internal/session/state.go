package session

import (
	"errors"
	"maps"

	"github.com/abhisek/seqgarden/internal/progression"
)

var (
	// ErrNotHidden is returned when an answer is typed into a pot that
	// already shows its term.
	ErrNotHidden = errors.New("term is not hidden")

	// ErrNotSolved is returned by NextLevel before a passing check.
	ErrNotSolved = errors.New("current problem not solved")
)

// Phase represents where the session is in the check cycle.
type Phase int

const (
	PhasePlaying   Phase = iota // Editing answers
	PhaseCorrect                // Last check passed; next level unlocked
	PhaseIncorrect              // Last check failed
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseCorrect:
		return "correct"
	case PhaseIncorrect:
		return "incorrect"
	default:
		return "unknown"
	}
}

// Answers is everything the player has typed or picked for the current
// problem. The undo stack holds Answers values, so they must never share
// the Terms map.
type Answers struct {
	// Terms maps a hidden index to the raw text in its pot.
	Terms map[int]string

	// Kind is the player's guess; KindUnset until picked.
	Kind progression.Kind

	// Reason is the raw reason text.
	Reason string
}

// Clone returns a deep copy.
func (a Answers) Clone() Answers {
	out := a
	out.Terms = maps.Clone(a.Terms)
	if out.Terms == nil {
		out.Terms = make(map[int]string)
	}
	return out
}

// Submission converts the answers for the validator.
func (a Answers) Submission() progression.Submission {
	return progression.Submission{
		Terms:  maps.Clone(a.Terms),
		Kind:   a.Kind,
		Reason: a.Reason,
	}
}

func emptyAnswers() Answers {
	return Answers{Terms: make(map[int]string)}
}
