// Package writing implements the exercise screen where the learner types
// a response.
package writing

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/ui/components"
	"github.com/abhisek/linguaflow/internal/ui/layout"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

const (
	submitKey = "ctrl+s"
	hintKey   = "ctrl+t"
	playKey   = "ctrl+p"
)

// WritingScreen shows the exercise and collects the learner's text.
type WritingScreen struct {
	ex       exercise.Exercise
	errMsg   string
	input    components.TextArea
	submit   components.Button
	play     components.Button
	showHint bool
	playing  bool
	audioErr string
}

var _ screen.Screen = (*WritingScreen)(nil)
var _ screen.KeyHintProvider = (*WritingScreen)(nil)

// New creates the writing screen. draft pre-fills the editor and errMsg is
// shown as a banner, both used when returning after a failed assessment.
func New(ex exercise.Exercise, draft, errMsg string, width, height int) *WritingScreen {
	s := &WritingScreen{
		ex:     ex,
		errMsg: errMsg,
		input:  components.NewTextArea(ex.Placeholder(), draft, ex.MinWords()),
	}
	s.submit = components.NewButton("Submit for Feedback", submitKey, false, s.submitCmd)
	s.play = components.NewButton("▶ Play Audio", playKey, true, s.playCmd)
	s.resize(width, height)
	s.refresh()
	return s
}

func (s *WritingScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *WritingScreen) Title() string {
	return s.ex.Title
}

func (s *WritingScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Ctrl+T", Description: "Hint"},
	}
	if s.ex.HasAudio() {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+P", Description: "Play"})
	}
	return hints
}

// Value returns the current draft.
func (s *WritingScreen) Value() string {
	return s.input.Value()
}

func (s *WritingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.resize(msg.Width, layout.ContentHeight(msg.Height))
		return s, nil

	case screen.AudioStateMsg:
		s.playing = msg.Playing
		s.audioErr = ""
		if msg.Err != nil {
			s.audioErr = msg.Err.Error()
		}
		s.refresh()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case submitKey:
			var cmd tea.Cmd
			s.submit, cmd = s.submit.Update(msg)
			return s, cmd
		case playKey:
			if !s.ex.HasAudio() {
				return s, nil
			}
			var cmd tea.Cmd
			s.play, cmd = s.play.Update(msg)
			s.refresh()
			return s, cmd
		case hintKey:
			s.showHint = !s.showHint
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.refresh()
	return s, cmd
}

func (s *WritingScreen) submitCmd() tea.Cmd {
	text := s.input.Value()
	return func() tea.Msg { return screen.SubmitMsg{Text: text} }
}

func (s *WritingScreen) playCmd() tea.Cmd {
	s.playing = true
	s.audioErr = ""
	s.refresh()
	return func() tea.Msg { return screen.PlayAudioMsg{} }
}

func (s *WritingScreen) refresh() {
	s.submit.Active = s.input.Ready()
	s.play.Active = !s.playing
	if s.playing {
		s.play.Label = "♪ Playing..."
	} else {
		s.play.Label = "▶ Play Audio"
	}
}

func (s *WritingScreen) resize(width, height int) {
	cw := components.ContentWidth(width)
	rows := 8
	if s.ex.Interaction() != exercise.InteractParagraph {
		rows = 3
	}
	if layout.IsCompactHeight(height) {
		rows = min(rows, 4)
	}
	s.input.SetSize(cw, rows)
}

func (s *WritingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	if s.errMsg != "" {
		b.WriteString(theme.Banner.Width(cw).Render("⚠ " + s.errMsg))
		b.WriteString("\n\n")
	}

	var card strings.Builder
	if s.ex.TargetFocus != "" {
		card.WriteString(theme.Badge.Render(strings.ToUpper(s.ex.TargetFocus)))
		card.WriteString("\n")
	}
	card.WriteString(theme.Body.Bold(true).Render(s.ex.Title))
	card.WriteString("\n\n")
	card.WriteString(theme.Body.Render(strings.Join(components.Wrap(s.ex.Description, cw), "\n")))

	if s.ex.IsCloze() {
		card.WriteString("\n\n")
		card.WriteString(components.Card("FILL IN THE BLANKS",
			theme.Body.Bold(true).Render(strings.Join(components.Wrap(s.ex.ClozeSentence, cw-6), "\n")),
			cw-6, theme.Secondary))
	}

	if s.ex.HasAudio() {
		card.WriteString("\n\n")
		card.WriteString(lipgloss.PlaceHorizontal(cw, lipgloss.Center, s.play.View()))
		if s.audioErr != "" {
			card.WriteString("\n")
			card.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.audioErr))
		}
	}

	if s.showHint {
		card.WriteString("\n\n")
		card.WriteString(theme.HintBox.Render("Hint: " + s.ex.Hint))
	}

	b.WriteString(components.Card("", card.String(), cw, theme.Border))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	status := s.submit.View()
	if n := s.input.WordCount(); n < s.ex.MinWords() {
		status += "  " + theme.Hint.Render(fmt.Sprintf("at least %d words", s.ex.MinWords()))
	}
	b.WriteString(status)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
}
