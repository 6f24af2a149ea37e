package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

type pressedMsg struct{ label string }

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks on space", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"keeps newlines", "one\ntwo", 10, []string{"one", "two"}},
		{"cuts long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"empty", "", 10, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.in, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapWideRunes(t *testing.T) {
	// Each CJK rune is two cells wide and cannot fit in width 1.
	lines := Wrap("日本語", 1)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	for _, l := range Wrap("日本語 テキスト", 4) {
		if w := runewidth.StringWidth(l); w > 4 {
			t.Errorf("line %q is %d cells wide", l, w)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("claude-sonnet-4-5-20250929", 10); runewidth.StringWidth(got) > 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate = %q, want unchanged", got)
	}
}

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "A", Disabled: true},
		{Label: "B"},
		{Label: "C", Disabled: true},
		{Label: "D"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("Selected = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Beginner", Action: func() tea.Cmd {
			return func() tea.Msg { return pressedMsg{"Beginner"} }
		}},
	})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	if msg, ok := cmd().(pressedMsg); !ok || msg.label != "Beginner" {
		t.Errorf("msg = %#v", msg)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A"}, {Label: "B", Disabled: true}, {Label: "C"}})
	m.Select(2)
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}
	m.Select(1)
	if m.Selected != 2 {
		t.Error("Select should ignore disabled items")
	}
	m.Select(9)
	if m.Selected != 2 {
		t.Error("Select should ignore out of range")
	}
}

func TestMenuViewShowsDescriptions(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "Advanced", Description: "Complex structures and nuance."}})
	v := ansi.Strip(m.View(60))
	if !strings.Contains(v, "Advanced") || !strings.Contains(v, "Complex structures") {
		t.Errorf("view = %q", v)
	}
}

func TestTabsWrapAround(t *testing.T) {
	tabs := NewTabs("One", "Two")
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if tabs.Active != 1 {
		t.Errorf("Active = %d, want 1", tabs.Active)
	}
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if tabs.Active != 0 {
		t.Errorf("Active = %d, want 0", tabs.Active)
	}
	tabs, _ = tabs.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if tabs.Active != 1 {
		t.Errorf("Active = %d, want 1", tabs.Active)
	}
}

func TestButtonInactiveIgnoresKey(t *testing.T) {
	pressed := false
	b := NewButton("Submit", "ctrl+s", false, func() tea.Cmd {
		pressed = true
		return nil
	})
	b.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if pressed {
		t.Error("inactive button fired")
	}

	b.Active = true
	b.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if !pressed {
		t.Error("active button did not fire")
	}
}

func TestTextAreaReady(t *testing.T) {
	ta := NewTextArea("type here", "one two", 3)
	if ta.Ready() {
		t.Error("two words should not meet a minimum of three")
	}
	ta = NewTextArea("type here", "one two three", 3)
	if !ta.Ready() || ta.WordCount() != 3 {
		t.Errorf("WordCount = %d, Ready = %v", ta.WordCount(), ta.Ready())
	}
	ta.SetSize(40, 3)
	if !strings.Contains(ansi.Strip(ta.View()), "3 words") {
		t.Error("view should show the word count")
	}
}

func TestScoreBarClamps(t *testing.T) {
	if v := ansi.Strip(NewScoreBar(150, 30).View()); !strings.Contains(v, "100/100") {
		t.Errorf("view = %q", v)
	}
	if v := ansi.Strip(NewScoreBar(-5, 30).View()); !strings.Contains(v, "0/100") {
		t.Errorf("view = %q", v)
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct{ in, want int }{
		{200, 76},
		{80, 70},
		{10, 20},
	}
	for _, tt := range tests {
		if got := ContentWidth(tt.in); got != tt.want {
			t.Errorf("ContentWidth(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
