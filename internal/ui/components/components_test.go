package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestTextInput_NumericFilter(t *testing.T) {
	ti := NewTextInput("?", true, 8)
	ti.Focus()

	for _, r := range "-1x,5/2a" {
		ti, _ = ti.Update(keyPress(r))
	}
	if got := ti.Value(); got != "-1,5/2" {
		t.Errorf("Value = %q, want %q", got, "-1,5/2")
	}
}

func TestTextInput_FreeText(t *testing.T) {
	ti := NewTextInput("", false, 0)
	ti.Focus()

	for _, r := range "ab1" {
		ti, _ = ti.Update(keyPress(r))
	}
	if got := ti.Value(); got != "ab1" {
		t.Errorf("Value = %q, want %q", got, "ab1")
	}
}

func TestChoice_PickByNumberAndSpace(t *testing.T) {
	c := NewChoice("PA", "PG")

	c, changed := c.Update(keyPress('2'))
	if changed || c.Chosen != -1 {
		t.Fatal("unfocused choice must ignore keys")
	}

	c.Focused = true
	c, changed = c.Update(keyPress('2'))
	if !changed || c.Chosen != 1 {
		t.Errorf("after '2': chosen=%d changed=%v", c.Chosen, changed)
	}

	c, changed = c.Update(keyPress('2'))
	if changed {
		t.Error("re-picking the same option should not report a change")
	}

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	c, changed = c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !changed || c.Chosen != 0 {
		t.Errorf("after left+space: chosen=%d changed=%v", c.Chosen, changed)
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "a", Action: func() tea.Cmd { picked = "a"; return nil }},
		{Label: "b", Disabled: true},
		{Label: "c", Action: func() tea.Cmd { picked = "c"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "c" {
		t.Errorf("picked = %q, want c", picked)
	}
}
