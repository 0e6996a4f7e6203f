package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/store"
)

// ProblemSource draws problems for a tier. *progression.Generator is the
// production implementation; tests pass fixed problems.
type ProblemSource interface {
	Generate(tier progression.Tier) (*progression.Problem, error)
}

// Session is one player's run through the garden: the current problem,
// the answers typed so far, their undo history and the last check.
//
// A Session is driven from the bubbletea update loop only and is not safe
// for concurrent use.
type Session struct {
	id     string
	source ProblemSource
	repo   store.EventRepo
	logger *slog.Logger
	now    func() time.Time

	tier    progression.Tier
	level   int
	round   int
	problem *progression.Problem

	answers Answers
	history []Answers
	phase   Phase
	outcome *progression.Outcome

	started       time.Time
	checks        int
	passedChecks  int
	levelsCleared int
}

// Option configures a Session.
type Option func(*Session)

// WithEventRepo journals every generated problem and every check.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Session) { s.repo = repo }
}

// WithLogger sets the logger used for journal failures and transitions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID fixes the session id instead of generating a UUID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New starts a session at level 1 of tier with a fresh problem.
func New(source ProblemSource, tier progression.Tier, opts ...Option) (*Session, error) {
	s := &Session{
		source: source,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.logger = s.logger.With("session", s.id)
	s.started = s.now()

	if err := s.load(tier, 1); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Tier returns the current tier.
func (s *Session) Tier() progression.Tier { return s.tier }

// Level returns the 1-based level within the current tier.
func (s *Session) Level() int { return s.level }

// Problem returns the current problem. Callers must not modify it.
func (s *Session) Problem() *progression.Problem { return s.problem }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Answers returns a copy of the current answers.
func (s *Session) Answers() Answers { return s.answers.Clone() }

// Outcome returns the result of the last check, or false when the
// answers have changed since (or nothing was checked yet).
func (s *Session) Outcome() (progression.Outcome, bool) {
	if s.outcome == nil {
		return progression.Outcome{}, false
	}
	return *s.outcome, true
}

// CanUndo reports whether Undo would restore anything.
func (s *Session) CanUndo() bool { return len(s.history) > 0 }

// SetTerm sets the text typed into the pot at index i.
func (s *Session) SetTerm(i int, text string) error {
	if !s.problem.IsHidden(i) {
		return fmt.Errorf("%w: index %d", ErrNotHidden, i)
	}
	if cur, ok := s.answers.Terms[i]; ok && cur == text || !ok && text == "" {
		return nil
	}
	s.mutate(func(a *Answers) { a.Terms[i] = text })
	return nil
}

// SetKind records the player's guess of the progression kind.
func (s *Session) SetKind(k progression.Kind) {
	if s.answers.Kind == k {
		return
	}
	s.mutate(func(a *Answers) { a.Kind = k })
}

// SetReason sets the reason text.
func (s *Session) SetReason(text string) {
	if s.answers.Reason == text {
		return
	}
	s.mutate(func(a *Answers) { a.Reason = text })
}

// mutate pushes the current answers onto the undo stack and applies fn.
// Any edit invalidates the last check.
func (s *Session) mutate(fn func(*Answers)) {
	s.history = append(s.history, s.answers.Clone())
	fn(&s.answers)
	s.clearStatus()
}

// Undo restores the answers as they were before the last edit. It
// returns false, changing nothing, when there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := len(s.history) - 1
	s.answers = s.history[last]
	s.history = s.history[:last]
	s.clearStatus()
	return true
}

func (s *Session) clearStatus() {
	s.phase = PhasePlaying
	s.outcome = nil
}

// Check validates the current answers and moves to PhaseCorrect or
// PhaseIncorrect. Checking again without an edit in between returns the
// previous outcome and is not counted or journaled.
func (s *Session) Check() progression.Outcome {
	if s.outcome != nil {
		return *s.outcome
	}

	out := progression.Validate(s.problem, s.answers.Submission())
	s.outcome = &out
	s.checks++
	if out.Correct {
		s.phase = PhaseCorrect
		s.passedChecks++
	} else {
		s.phase = PhaseIncorrect
	}

	termsCorrect := 0
	for _, ok := range out.Terms {
		if ok {
			termsCorrect++
		}
	}
	s.logger.Debug("check", "round", s.round, "correct", out.Correct,
		"terms_correct", termsCorrect, "kind_correct", out.KindCorrect, "reason_correct", out.ReasonCorrect)

	if s.repo != nil {
		err := s.repo.AppendCheckEvent(context.Background(), store.CheckEventData{
			SessionID:     s.id,
			Round:         s.round,
			Correct:       out.Correct,
			TermsCorrect:  termsCorrect,
			TermsTotal:    len(s.problem.Hidden),
			KindCorrect:   out.KindCorrect,
			ReasonCorrect: out.ReasonCorrect,
		})
		if err != nil {
			s.logger.Warn("journal check", "err", err)
		}
	}
	return out
}

// NextLevel advances to the next level of the current tier. It is only
// allowed right after a passing check.
func (s *Session) NextLevel() error {
	if s.phase != PhaseCorrect {
		return ErrNotSolved
	}
	if err := s.load(s.tier, s.level+1); err != nil {
		return err
	}
	s.levelsCleared++
	return nil
}

// ChangeTier restarts at level 1 of tier. On error the session is left
// untouched.
func (s *Session) ChangeTier(tier progression.Tier) error {
	return s.load(tier, 1)
}

// Reset clears the answers, undo history and status of the current
// problem without drawing a new one.
func (s *Session) Reset() {
	s.answers = emptyAnswers()
	s.history = nil
	s.clearStatus()
}

// load draws a problem and installs it with a clean slate.
func (s *Session) load(tier progression.Tier, level int) error {
	p, err := s.source.Generate(tier)
	if err != nil {
		return fmt.Errorf("new problem: %w", err)
	}

	s.tier = tier
	s.level = level
	s.round++
	s.problem = p
	s.Reset()

	s.logger.Info("new problem", "round", s.round, "tier", string(tier), "level", level,
		"kind", p.Kind.String(), "reason", p.Reason, "hidden", p.Hidden)

	if s.repo != nil {
		err := s.repo.AppendLevelEvent(context.Background(), store.LevelEventData{
			SessionID: s.id,
			Round:     s.round,
			Tier:      string(tier),
			Level:     level,
			Kind:      p.Kind.String(),
			Reason:    p.Reason,
			Terms:     p.Full,
			Hidden:    p.Hidden,
		})
		if err != nil {
			s.logger.Warn("journal level", "err", err)
		}
	}
	return nil
}
