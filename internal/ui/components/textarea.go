package components

import (
	"fmt"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

// TextArea wraps bubbles/textarea with a live word counter.
type TextArea struct {
	Model    textarea.Model
	MinWords int
}

// NewTextArea creates a focused text area.
func NewTextArea(placeholder, value string, minWords int) TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetValue(value)
	ta.Focus()

	return TextArea{Model: ta, MinWords: minWords}
}

// Init returns the initial command.
func (t TextArea) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize resizes the editing area.
func (t *TextArea) SetSize(width, height int) {
	t.Model.SetWidth(width)
	t.Model.SetHeight(height)
}

// Update handles messages.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text area with its word count underneath.
func (t TextArea) View() string {
	n := t.WordCount()
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if n >= t.MinWords {
		style = style.Foreground(theme.Success)
	}
	counter := style.Render(fmt.Sprintf("%d words", n))
	return t.Model.View() + "\n" + lipgloss.PlaceHorizontal(t.Model.Width(), lipgloss.Right, counter)
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}

// WordCount returns the number of whitespace-separated words.
func (t TextArea) WordCount() int {
	return exercise.WordCount(t.Model.Value())
}

// Ready reports whether the text meets the word minimum.
func (t TextArea) Ready() bool {
	return t.WordCount() >= t.MinWords
}
