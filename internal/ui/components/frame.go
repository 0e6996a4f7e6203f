package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/seqgarden/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for framed sections.
func ContentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 64)
}

// GardenFrame wraps content in a double-border frame, centered
// vertically and horizontally within the given dimensions.
func GardenFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
