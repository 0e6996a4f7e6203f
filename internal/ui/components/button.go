package components

import (
	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// Button is a styled, non-interactive button label. Screens own the key
// that presses it.
type Button struct {
	Label    string
	Key      string
	Active   bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label, key string) Button {
	return Button{Label: label, Key: key}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " (" + b.Key + ")"
	}
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}
