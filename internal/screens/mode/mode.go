// Package mode implements the practice mode menu.
package mode

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/ui/components"
	"github.com/abhisek/linguaflow/internal/ui/layout"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

// ModeScreen lets the learner pick what to practise.
type ModeScreen struct {
	level  exercise.Level
	errMsg string
	menu   components.Menu
}

var _ screen.Screen = (*ModeScreen)(nil)
var _ screen.KeyHintProvider = (*ModeScreen)(nil)

// New creates the mode menu for level. errMsg, when set, is shown above
// the menu.
func New(level exercise.Level, errMsg string) *ModeScreen {
	items := make([]components.MenuItem, 0, len(exercise.Modes))
	for _, m := range exercise.Modes {
		items = append(items, components.MenuItem{
			Label:       m.String(),
			Description: m.Description(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return screen.SelectModeMsg{Mode: m} }
			},
		})
	}
	return &ModeScreen{
		level:  level,
		errMsg: errMsg,
		menu:   components.NewMenu(items),
	}
}

func (s *ModeScreen) Init() tea.Cmd {
	return nil
}

func (s *ModeScreen) Title() string {
	return "Choose a Focus"
}

func (s *ModeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back to levels"},
	}
}

func (s *ModeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return screen.BackMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *ModeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if s.errMsg != "" {
		b.WriteString(theme.Banner.Width(cw).Render("⚠ " + s.errMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Title.Width(cw).Render("What do you want to improve?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Choose a focus area for today's session."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render(s.level.String()))
	b.WriteString("\n\n")

	menu := s.menu.View(cw)
	if layout.IsCompactHeight(height) {
		menu = compactMenu(s.menu)
	}
	b.WriteString(menu)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// compactMenu renders labels only, for short terminals.
func compactMenu(m components.Menu) string {
	labels := components.Menu{Selected: m.Selected}
	for _, it := range m.Items {
		labels.Items = append(labels.Items, components.MenuItem{Label: it.Label})
	}
	return labels.View(0)
}
