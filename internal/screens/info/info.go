package info

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/router"
	"github.com/abhisek/seqgarden/internal/screen"
	"github.com/abhisek/seqgarden/internal/ui/components"
	"github.com/abhisek/seqgarden/internal/ui/layout"
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// InfoScreen explains the game.
type InfoScreen struct {
	table  *progression.TierTable
	offset int
}

var _ screen.Screen = (*InfoScreen)(nil)
var _ screen.KeyHintProvider = (*InfoScreen)(nil)

// New creates the help screen. Tier descriptions come from table.
func New(table *progression.TierTable) *InfoScreen {
	if table == nil {
		table = progression.DefaultTierTable()
	}
	return &InfoScreen{table: table}
}

func (s *InfoScreen) Init() tea.Cmd {
	return nil
}

func (s *InfoScreen) Title() string {
	return "How to Play"
}

func (s *InfoScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Back"},
	}
}

func (s *InfoScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		s.offset++
	case "enter", "q", "?":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *InfoScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := strings.Split(s.render(cw), "\n")

	visible := max(height-4, 1)
	maxOffset := max(len(lines)-visible, 0)
	s.offset = min(s.offset, maxOffset)
	lines = lines[s.offset:min(s.offset+visible, len(lines))]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n")))
}

func (s *InfoScreen) render(cw int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw)

	var b strings.Builder
	section := func(title string) {
		b.WriteString(theme.Heading.Render(title))
		b.WriteString("\n\n")
	}

	section("The Game")
	b.WriteString(body.Render("Sequence Garden is a game for practising number sequences. Complete the patterns to help the gardener's flowers grow!"))
	b.WriteString("\n\n")

	section("How to Play")
	steps := []string{
		"Pick a difficulty tier to start.",
		"Look at the numbers in the flower pots. Some of them are missing.",
		"Fill the empty pots (?) with the numbers that complete the pattern.",
		"Decide whether the sequence is an Arithmetic Progression (PA) or a Geometric Progression (PG).",
		"Type the reason of the progression.",
		"Press Enter to check. When everything is right, the pots bloom and the next level opens.",
	}
	for i, step := range steps {
		b.WriteString(body.Render(string(rune('1'+i)) + ". " + step))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("Kinds of Progression")
	b.WriteString(body.Render("Arithmetic (PA): the difference between consecutive terms is constant. That difference is the reason; you add it to get the next term."))
	b.WriteString("\n")
	b.WriteString(dim.Render("  Example: 2, 5, 8, 11... (reason 3)"))
	b.WriteString("\n\n")
	b.WriteString(body.Render("Geometric (PG): each term after the first is the previous term multiplied by a constant, the reason."))
	b.WriteString("\n")
	b.WriteString(dim.Render("  Example: 3, 6, 12, 24... (reason 2)"))
	b.WriteString("\n\n")
	b.WriteString(dim.Render("Numbers may be typed as 0.5, 0,5 or 1/2."))
	b.WriteString("\n\n")

	section("Tiers")
	for _, cfg := range s.table.Tiers {
		b.WriteString(body.Render("• " + cfg.Label + ": " + cfg.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	section("Keys")
	keys := []layout.KeyHint{
		{Key: "Tab / Shift+Tab", Description: "move between pots, kind and reason"},
		{Key: "←→ or 1/2", Description: "pick the kind"},
		{Key: "Enter", Description: "check, or go to the next level once solved"},
		{Key: "Ctrl+Z", Description: "undo the last edit"},
		{Key: "Ctrl+R", Description: "clear all answers"},
		{Key: "Esc", Description: "finish and see the summary"},
	}
	for _, k := range keys {
		b.WriteString(theme.Selected.Render(k.Key) + "  " + dim.UnsetWidth().Render(k.Description))
		b.WriteString("\n")
	}

	return b.String()
}
