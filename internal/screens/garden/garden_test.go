package garden

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/router"
	"github.com/abhisek/seqgarden/internal/screens/info"
	"github.com/abhisek/seqgarden/internal/screens/summary"
	sess "github.com/abhisek/seqgarden/internal/session"
	"github.com/abhisek/seqgarden/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func newTestGarden(t *testing.T, tier progression.Tier) (*GardenScreen, *sess.Session) {
	t.Helper()
	gen := progression.NewSeededGenerator(nil, 11)
	s, err := sess.New(gen, tier)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	g := New(s, gen.Table(), nil)
	g.Init()
	return g, s
}

func typeText(g *GardenScreen, text string) {
	for _, r := range text {
		g.Update(keyPress(r))
	}
}

// fillCorrect types the right answer into every field.
func fillCorrect(g *GardenScreen) {
	sub := progression.SubmissionFor(g.sess.Problem())
	for _, idx := range g.sess.Problem().Hidden {
		typeText(g, sub.Terms[idx])
		g.Update(specialKey(tea.KeyTab))
	}
	if sub.Kind == progression.KindArithmetic {
		g.Update(keyPress('1'))
	} else {
		g.Update(keyPress('2'))
	}
	g.Update(specialKey(tea.KeyTab))
	typeText(g, sub.Reason)
}

func TestGarden_SolveAndAdvance(t *testing.T) {
	for _, tier := range []progression.Tier{progression.TierBeginner, progression.TierIntermediate, progression.TierAdvanced} {
		g, s := newTestGarden(t, tier)
		fillCorrect(g)

		g.Update(specialKey(tea.KeyEnter))
		if s.Phase() != sess.PhaseCorrect {
			out, _ := s.Outcome()
			t.Fatalf("%s: phase = %v after check, outcome %+v answers %+v", tier, s.Phase(), out, s.Answers())
		}
		if view := g.View(100, 30); !strings.Contains(view, msgCorrect) {
			t.Errorf("%s: view missing success message", tier)
		}

		g.Update(specialKey(tea.KeyEnter))
		if s.Level() != 2 {
			t.Errorf("%s: level = %d after next, want 2", tier, s.Level())
		}
		if s.Phase() != sess.PhasePlaying {
			t.Errorf("%s: phase = %v after next, want playing", tier, s.Phase())
		}
		if len(g.pots) != len(s.Problem().Hidden) {
			t.Errorf("%s: %d pots for %d hidden terms", tier, len(g.pots), len(s.Problem().Hidden))
		}
	}
}

func TestGarden_IncorrectThenFix(t *testing.T) {
	g, s := newTestGarden(t, progression.TierBeginner)
	fillCorrect(g)
	typeText(g, "0") // reason is now wrong

	g.Update(specialKey(tea.KeyEnter))
	if s.Phase() != sess.PhaseIncorrect {
		t.Fatalf("phase = %v, want incorrect", s.Phase())
	}
	if view := g.View(100, 30); !strings.Contains(view, msgIncorrect) {
		t.Error("view missing failure message")
	}

	g.Update(specialKey(tea.KeyBackspace))
	if s.Phase() != sess.PhasePlaying {
		t.Errorf("phase = %v after edit, want playing", s.Phase())
	}

	g.Update(specialKey(tea.KeyEnter))
	if s.Phase() != sess.PhaseCorrect {
		t.Errorf("phase = %v after fix, want correct", s.Phase())
	}
}

func TestGarden_UndoRestoresPot(t *testing.T) {
	g, s := newTestGarden(t, progression.TierBeginner)
	typeText(g, "12")

	g.Update(ctrlKey('z'))
	if got := g.pots[0].Value(); got != "1" {
		t.Errorf("pot = %q after undo, want %q", got, "1")
	}
	idx := s.Problem().Hidden[0]
	if got := s.Answers().Terms[idx]; got != "1" {
		t.Errorf("session term = %q after undo, want %q", got, "1")
	}

	g.Update(ctrlKey('z'))
	g.Update(ctrlKey('z'))
	if s.CanUndo() {
		t.Error("history should be empty")
	}
	if got := g.pots[0].Value(); got != "" {
		t.Errorf("pot = %q, want empty", got)
	}
}

func TestGarden_LettersIgnored(t *testing.T) {
	g, s := newTestGarden(t, progression.TierBeginner)
	typeText(g, "abc")

	if s.CanUndo() {
		t.Error("letters must not reach the session")
	}
	if g.pots[0].Value() != "" {
		t.Errorf("pot = %q, want empty", g.pots[0].Value())
	}
}

func TestGarden_SolvedIsReadOnly(t *testing.T) {
	g, s := newTestGarden(t, progression.TierBeginner)
	fillCorrect(g)
	g.Update(specialKey(tea.KeyEnter))
	before := s.Answers()

	typeText(g, "5")
	if s.Answers().Reason != before.Reason {
		t.Error("typing after a passing check should be ignored")
	}
	if s.Phase() != sess.PhaseCorrect {
		t.Errorf("phase = %v, want correct", s.Phase())
	}

	g.Update(ctrlKey('z'))
	if s.Phase() != sess.PhasePlaying {
		t.Errorf("phase = %v after undo, want playing", s.Phase())
	}
}

func TestGarden_ClearAnswers(t *testing.T) {
	g, s := newTestGarden(t, progression.TierBeginner)
	fillCorrect(g)

	g.Update(ctrlKey('r'))
	if s.CanUndo() || s.Answers().Reason != "" || g.reason.Value() != "" {
		t.Error("ctrl+r should clear answers and history")
	}
	if g.kind.Chosen != -1 {
		t.Errorf("kind chosen = %d, want -1", g.kind.Chosen)
	}
}

func TestGarden_FocusCycles(t *testing.T) {
	g, _ := newTestGarden(t, progression.TierAdvanced)
	n := g.fieldCount()

	for i := 0; i < n; i++ {
		g.Update(specialKey(tea.KeyTab))
	}
	if g.focus != 0 {
		t.Errorf("focus = %d after full cycle, want 0", g.focus)
	}

	g.Update(tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift})
	if g.focus != g.reasonField() {
		t.Errorf("focus = %d after shift+tab, want reason field %d", g.focus, g.reasonField())
	}
}

func TestGarden_EscShowsSummary(t *testing.T) {
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	gen := progression.NewSeededGenerator(nil, 3)
	s, err := sess.New(gen, progression.TierBeginner, sess.WithEventRepo(st.EventRepo()))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	g := New(s, gen.Table(), st.EventRepo())

	_, cmd := g.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}
}

func TestGarden_HelpKey(t *testing.T) {
	g, _ := newTestGarden(t, progression.TierBeginner)

	_, cmd := g.Update(keyPress('?'))
	if cmd == nil {
		t.Fatal("expected a command on ?")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if _, ok := msg.Screen.(*info.InfoScreen); !ok {
		t.Errorf("expected info screen, got %T", msg.Screen)
	}
}

func TestGarden_UndoButtonDisabledIndicator(t *testing.T) {
	g, _ := newTestGarden(t, progression.TierBeginner)
	if !strings.Contains(g.renderButtons(), "Undo") {
		t.Fatal("buttons should include Undo")
	}
	if g.sess.CanUndo() {
		t.Error("fresh garden should have undo disabled")
	}
	typeText(g, "1")
	if !g.sess.CanUndo() {
		t.Error("undo should be enabled after an edit")
	}
}

// bigSource serves one problem with terms past a billion.
type bigSource struct{ p *progression.Problem }

func (b bigSource) Generate(progression.Tier) (*progression.Problem, error) {
	return b.p, nil
}

func TestGarden_LongTermsFitInPots(t *testing.T) {
	p, err := progression.Build(progression.KindGeometric, 123456, 10, 5, []int{2, 4})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	s, err := sess.New(bigSource{p: p}, progression.TierAdvanced)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	g := New(s, nil, nil)
	g.Init()

	fillCorrect(g)

	if got := g.pots[1].Value(); got != "1234560000" {
		t.Errorf("last pot = %q, want full term", got)
	}
	g.Update(specialKey(tea.KeyEnter))
	if s.Phase() != sess.PhaseCorrect {
		t.Errorf("phase = %v, want correct", s.Phase())
	}
}

func TestFieldWidth(t *testing.T) {
	small, _ := progression.Build(progression.KindArithmetic, 4, 3, 5, []int{2})
	if w := fieldWidth(small); w != minPotWidth {
		t.Errorf("fieldWidth(small) = %d, want %d", w, minPotWidth)
	}
	big, _ := progression.Build(progression.KindArithmetic, -1000000000, -5, 5, []int{2})
	if w := fieldWidth(big); w < len("-1000000020") {
		t.Errorf("fieldWidth(big) = %d, too narrow", w)
	}
}
