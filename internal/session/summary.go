package session

import (
	"time"

	"github.com/abhisek/seqgarden/internal/progression"
)

// SessionSummary holds the data displayed on the summary screen.
type SessionSummary struct {
	SessionID     string
	Duration      time.Duration
	Tier          progression.Tier
	Level         int
	LevelsCleared int
	Checks        int
	PassedChecks  int

	// Accuracy is PassedChecks / Checks, or 0 before the first check.
	Accuracy float64
}

// Summary reports how the session has gone so far.
func (s *Session) Summary() *SessionSummary {
	var accuracy float64
	if s.checks > 0 {
		accuracy = float64(s.passedChecks) / float64(s.checks)
	}
	return &SessionSummary{
		SessionID:     s.id,
		Duration:      s.now().Sub(s.started),
		Tier:          s.tier,
		Level:         s.level,
		LevelsCleared: s.levelsCleared,
		Checks:        s.checks,
		PassedChecks:  s.passedChecks,
		Accuracy:      accuracy,
	}
}
