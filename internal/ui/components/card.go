package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for cards so stacked
// sections line up.
func ContentWidth(frameWidth int) int {
	// Leave room for border (2) + padding (4) + margin (4)
	w := frameWidth - 10
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card renders body in a rounded box of the given inner width. A non-empty
// heading is drawn in accent above the body.
func Card(heading, body string, width int, accent color.Color) string {
	content := body
	if heading != "" {
		content = lipgloss.NewStyle().Foreground(accent).Bold(true).Render(heading) + "\n" + body
	}
	return theme.Card.
		BorderForeground(accent).
		Width(width + 6).
		Render(content)
}
