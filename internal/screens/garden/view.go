package garden

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/progression"
	sess "github.com/abhisek/seqgarden/internal/session"
	"github.com/abhisek/seqgarden/internal/ui/components"
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

const (
	msgCorrect   = "Excellent! The pattern is complete!"
	msgIncorrect = "Hmm, something is not right. Try again!"
)

func (g *GardenScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("Level %d (%s)", g.sess.Level(), g.table.Label(g.sess.Tier()))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.renderPots()))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.renderGuesses()))
	b.WriteString("\n\n")

	if fb := g.renderFeedback(); fb != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, fb))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.renderButtons()))

	if g.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(g.errMsg))
	}

	return b.String()
}

// renderPots draws one pot per term. Hidden pots hold their input until
// the problem is solved, then show the true term.
func (g *GardenScreen) renderPots() string {
	p := g.sess.Problem()
	solved := g.sess.Phase() == sess.PhaseCorrect

	pots := make([]string, 0, p.Len())
	hiddenPos := 0
	for i, slot := range p.Display {
		var content string
		border := theme.Pot
		switch {
		case !slot.IsHidden():
			content = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(slot.String())
		case solved:
			content = theme.Correct.Render(progression.FormatNumber(p.Full[i]))
			border = theme.Success
			hiddenPos++
		default:
			pot := g.pots[hiddenPos]
			content = pot.View()
			if pot.Focused() {
				border = theme.Accent
			}
			hiddenPos++
		}

		pots = append(pots, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Width(g.fieldWidth+4).
			Align(lipgloss.Center).
			Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, pots...)
}

func (g *GardenScreen) renderGuesses() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(14)

	kindLine := label.Render("Progression") + g.kind.View()

	reasonBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
	if g.reason.Focused() {
		reasonBox = reasonBox.BorderForeground(theme.Accent)
	}
	reasonLine := lipgloss.JoinHorizontal(lipgloss.Center,
		label.Render("Reason"),
		reasonBox.Render(g.reason.View()))

	return lipgloss.JoinVertical(lipgloss.Left, kindLine, "", reasonLine)
}

func (g *GardenScreen) renderFeedback() string {
	switch g.sess.Phase() {
	case sess.PhaseCorrect:
		return theme.Correct.Render(msgCorrect)
	case sess.PhaseIncorrect:
		return theme.Incorrect.Render(msgIncorrect)
	default:
		return ""
	}
}

func (g *GardenScreen) renderButtons() string {
	solved := g.sess.Phase() == sess.PhaseCorrect

	check := components.NewButton("Check", "Enter")
	check.Active = !solved
	check.Disabled = solved

	undo := components.NewButton("Undo", "Ctrl+Z")
	undo.Disabled = !g.sess.CanUndo()

	next := components.NewButton("Next level", "Enter")
	next.Active = solved
	next.Disabled = !solved

	return lipgloss.JoinHorizontal(lipgloss.Center, check.View(), "  ", undo.View(), "  ", next.View())
}
