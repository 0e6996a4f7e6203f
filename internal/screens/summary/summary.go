package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	"github.com/abhisek/seqgarden/internal/router"
	"github.com/abhisek/seqgarden/internal/screen"
	"github.com/abhisek/seqgarden/internal/session"
	"github.com/abhisek/seqgarden/internal/store"
	"github.com/abhisek/seqgarden/internal/ui/components"
	"github.com/abhisek/seqgarden/internal/ui/layout"
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// maxRows caps the history table so it fits the screen.
const maxRows = 8

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.SessionSummary
	history []store.LevelRecord
	table   *progression.TierTable
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. history may be empty.
func New(summary *session.SessionSummary, history []store.LevelRecord, table *progression.TierTable) *SummaryScreen {
	if table == nil {
		table = progression.DefaultTierTable()
	}
	return &SummaryScreen{summary: summary, history: history, table: table}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Choose tier"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder
	center := func(style lipgloss.Style, text string) {
		b.WriteString(style.Width(width).Align(lipgloss.Center).Render(text))
		b.WriteString("\n")
	}

	center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), "Time to rest the watering can!")
	b.WriteString("\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	center(lipgloss.NewStyle().Foreground(theme.TextDim), fmt.Sprintf("Duration: %d:%02d", mins, secs))
	b.WriteString("\n")

	center(lipgloss.NewStyle().Foreground(theme.Text), fmt.Sprintf(
		"Levels cleared: %d        Checks: %d        Passed: %d",
		sum.LevelsCleared, sum.Checks, sum.PassedChecks))
	b.WriteString("\n")

	bar := components.NewProgressBar("Accuracy", sum.Accuracy, true, min(width-8, 50))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	if len(s.history) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", max(min(width-8, 60), 0)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Gardens")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")

		rows := s.history
		if len(rows) > maxRows {
			rows = rows[len(rows)-maxRows:]
		}
		lines := make([]string, 0, len(rows))
		for _, rec := range rows {
			lines = append(lines, s.renderRecord(rec))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n")))
	}

	return b.String()
}

// renderRecord formats one generated problem and how it went.
func (s *SummaryScreen) renderRecord(rec store.LevelRecord) string {
	terms := make([]string, len(rec.Terms))
	for i, v := range rec.Terms {
		terms[i] = progression.FormatNumber(v)
	}

	result := theme.Disabled.Render("skipped")
	switch {
	case rec.Solved:
		result = theme.Correct.Render(fmt.Sprintf("✓ %s", plural(rec.Checks, "check")))
	case rec.Checks > 0:
		result = theme.Incorrect.Render(fmt.Sprintf("✗ %s", plural(rec.Checks, "check")))
	}

	tier := progression.Tier(rec.Tier)
	line := fmt.Sprintf("%-13s L%-3d %s %-5s  %-28s ",
		s.table.Label(tier), rec.Level, rec.Kind,
		progression.FormatNumber(rec.Reason), strings.Join(terms, " "))
	return lipgloss.NewStyle().Foreground(theme.Text).Render(line) + result
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
