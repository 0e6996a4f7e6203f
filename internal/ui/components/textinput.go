package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// Mark is the check result shown next to an input.
type Mark int

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// numberRunes are the characters a number field accepts: digits, sign,
// decimal point or comma, a fraction bar and an exponent.
const numberRunes = "0123456789+-.,/eE"

// TextInput wraps bubbles/textinput with garden styling.
type TextInput struct {
	Model       textinput.Model
	NumericOnly bool
	MaxWidth    int
	mark        Mark
}

// NewTextInput creates a new styled text input. It starts blurred.
func NewTextInput(placeholder string, numericOnly bool, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
		ti.SetWidth(maxWidth)
	}

	return TextInput{
		Model:       ti,
		NumericOnly: numericOnly,
		MaxWidth:    maxWidth,
	}
}

// Update handles messages. Number fields drop keys that can never be
// part of a number.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.NumericOnly {
		if kmsg, ok := msg.(tea.KeyPressMsg); ok {
			if txt := kmsg.Text; txt != "" && strings.Trim(txt, numberRunes) != "" {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input with its mark.
func (t TextInput) View() string {
	view := t.Model.View()
	switch t.mark {
	case MarkCorrect:
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case MarkIncorrect:
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text, moving the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// SetMark sets the check mark shown next to the input.
func (t *TextInput) SetMark(m Mark) {
	t.mark = m
}
