// Package feedback implements the assessment results screen.
package feedback

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/ui/components"
	"github.com/abhisek/linguaflow/internal/ui/layout"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

const (
	tabCorrections = iota
	tabVocabulary
)

// NoErrorsText is shown when the assessment lists no feedback items.
const NoErrorsText = "No major errors found. Great job!"

// FeedbackScreen shows the score, the corrected text, and the itemised
// feedback.
type FeedbackScreen struct {
	res   assessment.Result
	ex    exercise.Exercise
	draft string

	tabs   components.Tabs
	vp     viewport.Model
	width  int
	height int
}

var _ screen.Screen = (*FeedbackScreen)(nil)
var _ screen.KeyHintProvider = (*FeedbackScreen)(nil)

// New creates the feedback screen for res. draft is the learner's text.
func New(res assessment.Result, ex exercise.Exercise, draft string, width, height int) *FeedbackScreen {
	s := &FeedbackScreen{
		res:   res,
		ex:    ex,
		draft: draft,
		tabs:  components.NewTabs("Corrections & Improvements", "Vocabulary Boost"),
		vp:    viewport.New(),
	}
	s.vp.KeyMap.Left.SetEnabled(false)
	s.vp.KeyMap.Right.SetEnabled(false)
	s.resize(width, height)
	return s
}

func (s *FeedbackScreen) Init() tea.Cmd {
	return nil
}

func (s *FeedbackScreen) Title() string {
	return "Feedback"
}

func (s *FeedbackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch tab"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Try another"},
	}
}

func (s *FeedbackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width, layout.ContentHeight(msg.Height))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, func() tea.Msg { return screen.ResetMsg{} }
		case "tab", "shift+tab", "left", "right", "h", "l":
			prev := s.tabs.Active
			s.tabs, _ = s.tabs.Update(msg)
			if s.tabs.Active != prev {
				s.vp.SetContent(s.body())
				s.vp.GotoTop()
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *FeedbackScreen) resize(width, height int) {
	s.width, s.height = width, height
	cw := components.ContentWidth(width)
	s.vp.SetWidth(cw + 6)
	s.vp.SetHeight(max(height-lipgloss.Height(s.summary(cw))-3, 3))
	s.vp.SetContent(s.body())
}

// summary renders the score block above the tabs.
func (s *FeedbackScreen) summary(cw int) string {
	var b strings.Builder
	headline := lipgloss.NewStyle().
		Foreground(theme.ScoreColor(s.res.Score)).
		Bold(true).
		Render(s.res.Headline())
	b.WriteString(headline)
	b.WriteString("\n")
	b.WriteString(components.NewScoreBar(s.res.Score, cw).View())
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(strings.Join(components.Wrap(s.res.GeneralComment, cw), "\n")))
	return b.String()
}

func (s *FeedbackScreen) body() string {
	cw := components.ContentWidth(s.width)
	if s.tabs.Active == tabVocabulary {
		return s.vocabularyView(cw)
	}
	return s.correctionsView(cw)
}

func (s *FeedbackScreen) correctionsView(cw int) string {
	var b strings.Builder
	wrap := func(text string, w int) string { return strings.Join(components.Wrap(text, w), "\n") }

	if s.ex.ExactMatch() {
		b.WriteString(components.Card("THE ANSWER", wrap(s.ex.HiddenText, cw-6), cw-6, theme.Secondary))
		b.WriteString("\n")
		b.WriteString(components.Card("YOU WROTE", wrap(s.draft, cw-6), cw-6, theme.Border))
		b.WriteString("\n")
	}

	better := lipgloss.NewStyle().Italic(true).Foreground(theme.Text).
		Render("“" + wrap(s.res.CorrectedVersion, cw-8) + "”")
	b.WriteString(components.Card("BETTER VERSION", better, cw-6, theme.TextDim))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Render("Specific Feedback"))
	b.WriteString("\n\n")

	if len(s.res.FeedbackItems) == 0 {
		b.WriteString(theme.Correct.Render("✓ " + NoErrorsText))
		b.WriteString("\n")
		return b.String()
	}

	for _, item := range s.res.FeedbackItems {
		marker := lipgloss.NewStyle().Foreground(theme.FeedbackColor(string(item.Type))).Render("●")
		line := fmt.Sprintf("%s %s → %s  %s",
			marker,
			theme.Incorrect.Render(item.Original),
			theme.Correct.Render(item.Correction),
			theme.Hint.Render(string(item.Type)))
		b.WriteString(line)
		b.WriteString("\n")
		for _, l := range components.Wrap(item.Explanation, cw-2) {
			b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(l) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (s *FeedbackScreen) vocabularyView(cw int) string {
	var b strings.Builder
	if len(s.res.ImprovedVocabulary) == 0 {
		b.WriteString(theme.Hint.Render("No vocabulary suggestions this time."))
		b.WriteString("\n\n")
	}
	for _, word := range s.res.ImprovedVocabulary {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("★ "))
		b.WriteString(theme.Body.Bold(true).Render(word))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render("Suggested power word"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	tip := strings.Join(components.Wrap(
		"Try incorporating these new words into your next practice session. Using more precise vocabulary helps convey your ideas more effectively and demonstrates higher proficiency.",
		cw-6), "\n")
	b.WriteString(components.Card("VOCABULARY TIP", tip, cw-6, theme.Primary))
	return b.String()
}

func (s *FeedbackScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.summary(cw))
	b.WriteString("\n\n")
	b.WriteString(s.tabs.View())
	b.WriteString("\n\n")
	b.WriteString(s.vp.View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
