// Package history implements the overlay listing recent LLM requests.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/router"
	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/store"
	"github.com/abhisek/linguaflow/internal/ui/components"
	"github.com/abhisek/linguaflow/internal/ui/layout"
	"github.com/abhisek/linguaflow/internal/ui/theme"
)

const (
	pageSize       = 50
	maxDetailLines = 6
)

type historyLoadedMsg struct {
	Events []store.LLMEventRecord
	Err    error
}

// HistoryScreen displays recent LLM requests recorded in the store.
type HistoryScreen struct {
	events   store.EventReader
	records  []store.LLMEventRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(events store.EventReader) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.events.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Request History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Close"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No requests yet. Start practicing!")
	}

	cw := components.ContentWidth(width)
	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	first := 0
	if visible := max(height-2, 1); s.selected >= visible {
		first = s.selected - visible + 1
	}

	for i := first; i < len(s.records); i++ {
		r := s.records[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := "ok"
		if !r.Success {
			status = "failed"
		}
		line := fmt.Sprintf("%s%s  %-12s %-16s %4d/%-4d %5dms %s",
			prefix,
			r.Timestamp.Local().Format("01-02 15:04"),
			components.Truncate(r.Purpose, 12),
			components.Truncate(r.Model, 16),
			r.InputTokens, r.OutputTokens,
			r.LatencyMs,
			status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if !r.Success {
			style = style.Foreground(theme.Error)
		}
		if i == s.selected {
			style = style.Bold(true).Foreground(theme.Primary)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(components.Truncate(line, cw))))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := r.ErrorMessage
			if detail == "" {
				detail = r.ResponseBody
			}
			if detail == "" {
				detail = "(no body recorded)"
			}
			lines := components.Wrap(detail, cw-4)
			if len(lines) > maxDetailLines {
				lines = append(lines[:maxDetailLines], "…")
			}
			for _, l := range lines {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(components.Truncate("    "+l, cw))))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}
