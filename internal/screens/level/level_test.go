package level

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/screen"
)

func TestEnterSelectsLevel(t *testing.T) {
	s := New(0)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command")
	}
	msg, ok := cmd().(screen.SelectLevelMsg)
	if !ok {
		t.Fatalf("msg = %T, want SelectLevelMsg", cmd())
	}
	if msg.Level != exercise.Intermediate {
		t.Errorf("Level = %v, want intermediate", msg.Level)
	}
}

func TestPreselectsCurrentLevel(t *testing.T) {
	s := New(exercise.Advanced)
	if s.menu.Selected != 2 {
		t.Errorf("Selected = %d, want 2", s.menu.Selected)
	}
}

func TestViewListsLevels(t *testing.T) {
	v := ansi.Strip(New(0).View(100, 34))
	for _, want := range []string{"What is your current level?", "Beginner", "Intermediate", "Advanced"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
