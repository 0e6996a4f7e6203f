package store

import (
	"context"
	"time"
)

// LevelEventData records one generated problem.
type LevelEventData struct {
	SessionID string

	// Round counts problems within the session (1-based). Unlike Level
	// it keeps increasing across tier changes.
	Round  int
	Tier   string
	Level  int
	Kind   string
	Reason float64
	Terms  []float64
	Hidden []int
}

// CheckEventData records one press of "check".
type CheckEventData struct {
	SessionID     string
	Round         int
	Correct       bool
	TermsCorrect  int
	TermsTotal    int
	KindCorrect   bool
	ReasonCorrect bool
}

// LevelRecord is a generated problem together with how the player did.
type LevelRecord struct {
	Sequence  int64
	Timestamp time.Time
	Round     int
	Tier      string
	Level     int
	Kind      string
	Reason    float64
	Terms     []float64
	Hidden    []int

	// Checks is the number of checks made on this problem; Solved is
	// true once one of them passed.
	Checks int
	Solved bool
}

// EventRepo provides append and query access to the session journal.
type EventRepo interface {
	// AppendLevelEvent records a newly generated problem.
	AppendLevelEvent(ctx context.Context, data LevelEventData) error

	// AppendCheckEvent records the outcome of a check.
	AppendCheckEvent(ctx context.Context, data CheckEventData) error

	// LevelHistory returns the session's problems in generation order.
	LevelHistory(ctx context.Context, sessionID string) ([]LevelRecord, error)
}
