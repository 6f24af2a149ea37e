// Package level implements the proficiency level menu.
package level

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

// LevelScreen lets the learner pick a proficiency level.
type LevelScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*LevelScreen)(nil)
var _ screen.KeyHintProvider = (*LevelScreen)(nil)

// New creates the level menu with the cursor on current, if set.
func New(current exercise.Level) *LevelScreen {
	items := make([]components.MenuItem, 0, len(exercise.Levels))
	for _, l := range exercise.Levels {
		items = append(items, components.MenuItem{
			Label:       l.String(),
			Description: l.Description(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return screen.SelectLevelMsg{Level: l} }
			},
		})
	}
	menu := components.NewMenu(items)
	for i, l := range exercise.Levels {
		if l == current {
			menu.Select(i)
		}
	}
	return &LevelScreen{menu: menu}
}

func (s *LevelScreen) Init() tea.Cmd {
	return nil
}

func (s *LevelScreen) Title() string {
	return "Choose Your Level"
}

func (s *LevelScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *LevelScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LevelScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("What is your current level?"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("We'll tailor the exercises to match your proficiency."))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View(cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
