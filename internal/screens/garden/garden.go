package garden

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/router"
	"github.com/abhisek/seqgarden/internal/screen"
	"github.com/abhisek/seqgarden/internal/screens/info"
	"github.com/abhisek/seqgarden/internal/screens/summary"
	sess "github.com/abhisek/seqgarden/internal/session"
	"github.com/abhisek/seqgarden/internal/store"
	"github.com/abhisek/seqgarden/internal/ui/components"
	"github.com/abhisek/seqgarden/internal/ui/layout"
)

// minPotWidth is the narrowest a pot is drawn, even for one-digit terms.
const minPotWidth = 8

// GardenScreen is the play screen: a row of flower pots, the kind
// selector and the reason field, all backed by one session.
type GardenScreen struct {
	sess  *sess.Session
	table *progression.TierTable
	repo  store.EventRepo

	pots   []components.TextInput // one per hidden index, in order
	kind   components.Choice
	reason components.TextInput

	// fieldWidth is the character limit of the pots and the reason field.
	fieldWidth int

	// focus walks pots first, then kind, then reason.
	focus  int
	errMsg string
}

var _ screen.Screen = (*GardenScreen)(nil)
var _ screen.KeyHintProvider = (*GardenScreen)(nil)
var _ screen.StatusProvider = (*GardenScreen)(nil)
var _ screen.EscHandler = (*GardenScreen)(nil)

// New creates a GardenScreen playing s. repo may be nil; the summary
// then shows totals only.
func New(s *sess.Session, table *progression.TierTable, repo store.EventRepo) *GardenScreen {
	if table == nil {
		table = progression.DefaultTierTable()
	}
	g := &GardenScreen{sess: s, table: table, repo: repo}
	g.rebuild()
	return g
}

func (g *GardenScreen) Init() tea.Cmd {
	return g.setFocus(0)
}

func (g *GardenScreen) Title() string {
	return "Sequence Garden"
}

func (g *GardenScreen) HandlesEsc() bool {
	return true
}

func (g *GardenScreen) Status() layout.Status {
	return layout.Status{Tier: g.table.Label(g.sess.Tier()), Level: g.sess.Level()}
}

func (g *GardenScreen) KeyHints() []layout.KeyHint {
	if g.sess.Phase() == sess.PhaseCorrect {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next level"},
			{Key: "Ctrl+Z", Description: "Undo"},
			{Key: "?", Description: "Help"},
			{Key: "Esc", Description: "Finish"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Check"},
		{Key: "Ctrl+Z", Description: "Undo"},
		{Key: "Ctrl+R", Description: "Clear"},
		{Key: "?", Description: "Help"},
		{Key: "Esc", Description: "Finish"},
	}
}

// fieldCount is the number of focusable fields.
func (g *GardenScreen) fieldCount() int {
	return len(g.pots) + 2
}

func (g *GardenScreen) kindField() int   { return len(g.pots) }
func (g *GardenScreen) reasonField() int { return len(g.pots) + 1 }

func (g *GardenScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return g, g.forward(msg)
	}

	g.errMsg = ""
	switch kmsg.String() {
	case "esc":
		return g, g.finish()
	case "?":
		return g, func() tea.Msg { return router.PushScreenMsg{Screen: info.New(g.table)} }
	case "ctrl+z":
		if g.sess.Undo() {
			g.sync()
		}
		return g, nil
	case "ctrl+r":
		g.sess.Reset()
		g.sync()
		return g, nil
	case "tab", "down":
		return g, g.setFocus((g.focus + 1) % g.fieldCount())
	case "shift+tab", "up":
		return g, g.setFocus((g.focus + g.fieldCount() - 1) % g.fieldCount())
	case "enter":
		if g.sess.Phase() == sess.PhaseCorrect {
			return g, g.nextLevel()
		}
		g.sess.Check()
		g.sync()
		return g, nil
	case "n":
		if g.sess.Phase() == sess.PhaseCorrect {
			return g, g.nextLevel()
		}
	}

	// A solved garden is read-only until undo or next level.
	if g.sess.Phase() == sess.PhaseCorrect {
		return g, nil
	}
	return g, g.edit(kmsg)
}

// edit sends a key to the focused field and records any change in the
// session.
func (g *GardenScreen) edit(msg tea.KeyPressMsg) tea.Cmd {
	p := g.sess.Problem()
	switch {
	case g.focus < len(g.pots):
		var cmd tea.Cmd
		g.pots[g.focus], cmd = g.pots[g.focus].Update(msg)
		if err := g.sess.SetTerm(p.Hidden[g.focus], g.pots[g.focus].Value()); err != nil {
			g.errMsg = err.Error()
		}
		g.sync()
		return cmd

	case g.focus == g.kindField():
		var changed bool
		g.kind, changed = g.kind.Update(msg)
		if changed {
			g.sess.SetKind(kindAt(g.kind.Chosen))
			g.sync()
		}
		return nil

	default:
		var cmd tea.Cmd
		g.reason, cmd = g.reason.Update(msg)
		g.sess.SetReason(g.reason.Value())
		g.sync()
		return cmd
	}
}

// forward passes non-key messages (cursor blink) to the focused input.
func (g *GardenScreen) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case g.focus < len(g.pots):
		g.pots[g.focus], cmd = g.pots[g.focus].Update(msg)
	case g.focus == g.reasonField():
		g.reason, cmd = g.reason.Update(msg)
	}
	return cmd
}

func (g *GardenScreen) nextLevel() tea.Cmd {
	if err := g.sess.NextLevel(); err != nil {
		if !errors.Is(err, sess.ErrNotSolved) {
			g.errMsg = err.Error()
		}
		return nil
	}
	g.rebuild()
	return g.setFocus(0)
}

// finish swaps the garden for the session summary.
func (g *GardenScreen) finish() tea.Cmd {
	var history []store.LevelRecord
	if g.repo != nil {
		// The journal is best effort; the summary falls back to totals.
		history, _ = g.repo.LevelHistory(context.Background(), g.sess.ID())
	}
	sum := summary.New(g.sess.Summary(), history, g.table)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: sum} }
}

// rebuild creates fresh widgets for the current problem.
func (g *GardenScreen) rebuild() {
	p := g.sess.Problem()
	g.fieldWidth = fieldWidth(p)
	g.pots = make([]components.TextInput, len(p.Hidden))
	for i := range g.pots {
		g.pots[i] = components.NewTextInput("?", true, g.fieldWidth)
	}
	g.kind = components.NewChoice(
		progression.KindArithmetic.DisplayName()+" (PA)",
		progression.KindGeometric.DisplayName()+" (PG)",
	)
	g.reason = components.NewTextInput("reason", true, g.fieldWidth)
	g.focus = 0
	g.sync()
}

// sync copies the session's answers and check marks into the widgets.
func (g *GardenScreen) sync() {
	p := g.sess.Problem()
	a := g.sess.Answers()
	out, checked := g.sess.Outcome()

	for i, idx := range p.Hidden {
		if g.pots[i].Value() != a.Terms[idx] {
			g.pots[i].SetValue(a.Terms[idx])
		}
		g.pots[i].SetMark(markFor(checked, out.Terms[idx]))
	}

	g.kind.Chosen = chosenFor(a.Kind)
	g.kind.Mark = markFor(checked, out.KindCorrect)

	if g.reason.Value() != a.Reason {
		g.reason.SetValue(a.Reason)
	}
	g.reason.SetMark(markFor(checked, out.ReasonCorrect))
}

func (g *GardenScreen) setFocus(i int) tea.Cmd {
	g.focus = i
	for j := range g.pots {
		g.pots[j].Blur()
	}
	g.reason.Blur()
	g.kind.Focused = false

	switch {
	case i < len(g.pots):
		return g.pots[i].Focus()
	case i == g.kindField():
		g.kind.Focused = true
		if g.kind.Chosen >= 0 {
			g.kind.Cursor = g.kind.Chosen
		}
		return nil
	default:
		return g.reason.Focus()
	}
}

// fieldWidth fits the longest term or reason of p, with room for a sign
// and a fraction bar, so any answer a tier table produces can be typed.
func fieldWidth(p *progression.Problem) int {
	longest := len(progression.FormatNumber(p.Reason))
	for _, v := range p.Full {
		longest = max(longest, len(progression.FormatNumber(v)))
	}
	return max(minPotWidth, longest+2)
}

func markFor(checked, ok bool) components.Mark {
	switch {
	case !checked:
		return components.MarkNone
	case ok:
		return components.MarkCorrect
	default:
		return components.MarkIncorrect
	}
}

func kindAt(i int) progression.Kind {
	switch i {
	case 0:
		return progression.KindArithmetic
	case 1:
		return progression.KindGeometric
	default:
		return progression.KindUnset
	}
}

func chosenFor(k progression.Kind) int {
	switch k {
	case progression.KindArithmetic:
		return 0
	case progression.KindGeometric:
		return 1
	default:
		return -1
	}
}
