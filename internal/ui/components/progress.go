package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/ui/theme"
)

// ScoreBar displays a 0-100 score as a horizontal bar coloured by band.
type ScoreBar struct {
	Score int
	Width int
}

// NewScoreBar creates a new score bar.
func NewScoreBar(score, width int) ScoreBar {
	return ScoreBar{Score: score, Width: width}
}

// View renders the score bar.
func (p ScoreBar) View() string {
	score := min(max(p.Score, 0), 100)
	label := fmt.Sprintf("  %d/100", score)

	barWidth := p.Width - len(label)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := barWidth * score / 100
	empty := barWidth - filled

	c := theme.ScoreColor(score)
	filledStr := lipgloss.NewStyle().
		Background(c).
		Render(strings.Repeat(" ", filled))

	emptyStr := theme.ProgressEmpty.
		Render(strings.Repeat(" ", empty))

	return filledStr + emptyStr + lipgloss.NewStyle().Foreground(c).Bold(true).Render(label)
}
