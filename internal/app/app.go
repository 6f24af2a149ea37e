package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/audio"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/router"
	"github.com/abhisek/linguaflow/internal/screen"
	"github.com/abhisek/linguaflow/internal/screens/feedback"
	"github.com/abhisek/linguaflow/internal/screens/history"
	"github.com/abhisek/linguaflow/internal/screens/level"
	"github.com/abhisek/linguaflow/internal/screens/loading"
	"github.com/abhisek/linguaflow/internal/screens/mode"
	"github.com/abhisek/linguaflow/internal/screens/writing"
	"github.com/abhisek/linguaflow/internal/session"
	"github.com/abhisek/linguaflow/internal/store"
	"github.com/abhisek/linguaflow/internal/ui/layout"
)

// Deps are the services the TUI drives.
type Deps struct {
	Generator exercise.Generator
	Evaluator assessment.Evaluator

	// Player is nil when no audio player is available.
	Player *audio.Player

	// Events is nil when request history is not recorded.
	Events store.EventReader
}

// exerciseReadyMsg carries a generated exercise. epoch identifies the
// session generation that asked for it.
type exerciseReadyMsg struct {
	epoch uint64
	ex    exercise.Exercise
}

type assessedMsg struct {
	epoch uint64
	res   *assessment.Result
	err   error
}

// AppModel is the root Bubble Tea model. It owns the session and swaps the
// root screen whenever the session state changes.
type AppModel struct {
	deps   Deps
	sess   session.Session
	epoch  uint64
	router *router.Router
	width  int
	height int

	stopAudio context.CancelFunc
}

// newAppModel creates a new AppModel on the level menu.
func newAppModel(deps Deps) AppModel {
	s := session.New()
	return AppModel{
		deps:   deps,
		sess:   s,
		router: router.New(level.New(s.Level)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.router.Update(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.stopPlayback()
			return m, tea.Quit
		case "ctrl+r":
			return m.reset()
		case "ctrl+l":
			if m.deps.Events != nil && m.router.Depth() == 1 {
				return m, m.router.Push(history.New(m.deps.Events))
			}
			return m, nil
		}

	case screen.SelectLevelMsg:
		s, err := session.SelectLevel(m.sess, msg.Level)
		return m.apply(s, err, nil)

	case screen.SelectModeMsg:
		s, err := session.SelectMode(m.sess, msg.Mode)
		if err != nil {
			return m.apply(s, err, nil)
		}
		return m.apply(s, nil, m.generate(s.Level, s.Mode))

	case screen.BackMsg:
		s, err := session.Back(m.sess)
		return m.apply(s, err, nil)

	case screen.SubmitMsg:
		s, err := session.Submit(m.sess, msg.Text)
		if err != nil {
			return m.apply(s, err, nil)
		}
		return m.apply(s, nil, m.assess(msg.Text, *s.Exercise, s.Level))

	case screen.ResetMsg:
		return m.reset()

	case screen.PlayAudioMsg:
		cmd := m.play()
		return m, cmd

	case exerciseReadyMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		s, err := session.ExerciseReady(m.sess, msg.ex)
		return m.apply(s, err, nil)

	case assessedMsg:
		if msg.epoch != m.epoch {
			return m, nil
		}
		if msg.err != nil {
			slog.Warn("assessment failed", "error", msg.err)
			s, err := session.AssessmentFailed(m.sess)
			return m.apply(s, err, nil)
		}
		s, err := session.AssessmentReady(m.sess, *msg.res)
		return m.apply(s, err, nil)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// apply stores next and, when the state or its message changed, mounts
// the matching root screen. Events that do not fit the current state are
// dropped.
func (m AppModel) apply(next session.Session, err error, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	var te *session.TransitionError
	if errors.As(err, &te) {
		slog.Debug("event ignored", "error", err)
		return m, nil
	}

	prev := m.sess
	m.sess = next
	if prev.State == next.State && prev.Err == next.Err {
		return m, cmd
	}

	slog.Debug("session transition", "from", prev.State, "to", next.State)
	if prev.State == session.Writing && next.State != session.Writing {
		m.stopPlayback()
	}
	return m, tea.Batch(m.router.SetRoot(m.screenFor(next)), cmd)
}

func (m AppModel) screenFor(s session.Session) screen.Screen {
	h := layout.ContentHeight(m.height)
	switch s.State {
	case session.SelectingMode:
		return mode.New(s.Level, s.Err)
	case session.GeneratingExercise:
		return loading.New(loading.Generating)
	case session.Writing:
		return writing.New(*s.Exercise, s.Draft, s.Err, m.width, h)
	case session.Analyzing:
		return loading.New(loading.Analyzing)
	case session.Feedback:
		return feedback.New(*s.Result, *s.Exercise, s.Draft, m.width, h)
	default:
		return level.New(s.Level)
	}
}

func (m AppModel) reset() (tea.Model, tea.Cmd) {
	m.stopPlayback()
	m.epoch++
	m.sess = session.Reset(m.sess)
	return m, m.router.SetRoot(m.screenFor(m.sess))
}

func (m AppModel) generate(lvl exercise.Level, md exercise.Mode) tea.Cmd {
	gen, epoch := m.deps.Generator, m.epoch
	return func() tea.Msg {
		return exerciseReadyMsg{epoch: epoch, ex: gen.Generate(context.Background(), lvl, md)}
	}
}

func (m AppModel) assess(text string, ex exercise.Exercise, lvl exercise.Level) tea.Cmd {
	eval, epoch := m.deps.Evaluator, m.epoch
	return func() tea.Msg {
		res, err := eval.Assess(context.Background(), text, ex, lvl)
		return assessedMsg{epoch: epoch, res: res, err: err}
	}
}

// play starts the dictation clip. The result arrives as an AudioStateMsg.
func (m *AppModel) play() tea.Cmd {
	ex := m.sess.Exercise
	if m.sess.State != session.Writing || ex == nil || !ex.HasAudio() {
		return nil
	}
	if m.deps.Player == nil {
		return func() tea.Msg { return screen.AudioStateMsg{Err: audio.ErrNoPlayer} }
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.stopAudio = cancel
	player, pcm := m.deps.Player, ex.AudioData
	return func() tea.Msg {
		defer cancel()
		err := player.Play(ctx, pcm, audio.SampleRate)
		switch {
		case errors.Is(err, audio.ErrBusy):
			return nil
		case ctx.Err() != nil:
			err = nil
		case err != nil:
			slog.Warn("audio playback failed", "error", err)
		}
		return screen.AudioStateMsg{Err: err}
	}
}

func (m *AppModel) stopPlayback() {
	if m.stopAudio != nil {
		m.stopAudio()
		m.stopAudio = nil
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.badge(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// badge names the selected level and mode for the header.
func (m AppModel) badge() string {
	switch {
	case m.sess.Level.Valid() && m.sess.Mode.Valid():
		return fmt.Sprintf("%s · %s", m.sess.Level.Slug(), m.sess.Mode)
	case m.sess.Level.Valid():
		return m.sess.Level.Slug()
	}
	return ""
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, p.KeyHints()...)
	}
	if m.sess.State != session.SelectingLevel {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Restart"})
	}
	if m.deps.Events != nil && m.router.Depth() == 1 {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "History"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
