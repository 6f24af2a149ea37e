// Package loading implements the spinner shown while a remote call is in
// flight.
package loading

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/ui/layout"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

// Kind selects the loading copy.
type Kind int

const (
	Generating Kind = iota
	Analyzing
)

// LoadingScreen ignores input; it is replaced when the result arrives.
type LoadingScreen struct {
	kind    Kind
	spinner spinner.Model
}

var _ screen.Screen = (*LoadingScreen)(nil)
var _ screen.KeyHintProvider = (*LoadingScreen)(nil)

// New creates a loading screen.
func New(kind Kind) *LoadingScreen {
	return &LoadingScreen{
		kind: kind,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Primary)),
		),
	}
}

func (s *LoadingScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *LoadingScreen) Title() string {
	if s.kind == Analyzing {
		return "Analyzing"
	}
	return "Generating"
}

func (s *LoadingScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{}
}

func (s *LoadingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LoadingScreen) View(width, height int) string {
	var content string
	switch s.kind {
	case Analyzing:
		content = s.spinner.View() + " " + theme.Body.Bold(true).Render("Reviewing your work") + "\n\n" +
			theme.Hint.Render("Checking grammar, vocabulary, and style...")
	default:
		content = s.spinner.View() + " " + theme.Hint.Render("Crafting your custom exercise...")
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Align(lipgloss.Center).Render(content))
}
