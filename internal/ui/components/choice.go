package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// Choice is a horizontal single-choice selector. Nothing is chosen until
// the player picks an option.
type Choice struct {
	Options []string
	Cursor  int
	Chosen  int // -1 when nothing is chosen
	Focused bool
	Mark    Mark
}

// NewChoice creates a selector over options with nothing chosen.
func NewChoice(options ...string) Choice {
	return Choice{Options: options, Chosen: -1}
}

// Update moves the cursor with left/right and picks with space, or with
// the option's 1-based number. The bool result reports whether the
// chosen option changed.
func (c Choice) Update(msg tea.Msg) (Choice, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.Focused {
		return c, false
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "right", "l":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space":
		return c.pick(c.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(c.Options) {
			return c.pick(int(key[0] - '1'))
		}
	}
	return c, false
}

func (c Choice) pick(i int) (Choice, bool) {
	c.Cursor = i
	if c.Chosen == i {
		return c, false
	}
	c.Chosen = i
	return c, true
}

// View renders the options side by side.
func (c Choice) View() string {
	parts := make([]string, len(c.Options))
	for i, opt := range c.Options {
		box := "( ) "
		if i == c.Chosen {
			box = "(•) "
		}
		style := theme.Unselected
		switch {
		case i == c.Chosen && c.Mark == MarkCorrect:
			style = theme.Correct
		case i == c.Chosen && c.Mark == MarkIncorrect:
			style = theme.Incorrect
		case c.Focused && i == c.Cursor:
			style = theme.Selected
		}
		label := box + opt
		if c.Focused && i == c.Cursor {
			label = "▸ " + label
		} else {
			label = "  " + label
		}
		parts[i] = style.Render(label)
	}
	return lipgloss.NewStyle().Render(strings.Join(parts, "   "))
}
