package session

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
)

// ErrStale is returned when a session was reset while a remote call was in
// flight. The late result is discarded.
var ErrStale = errors.New("session was reset during the request")

// TransitionFunc observes every successful state change.
type TransitionFunc func(prev, next Session)

// Machine drives one Session synchronously. It is safe for concurrent use;
// remote calls run without holding the lock, and the busy intermediate
// states reject any second request until the first completes.
type Machine struct {
	gen  exercise.Generator
	eval assessment.Evaluator

	mu        sync.Mutex
	s         Session
	epoch     uint64
	observers []TransitionFunc
}

// NewMachine returns a Machine on the level menu.
func NewMachine(gen exercise.Generator, eval assessment.Evaluator) *Machine {
	return &Machine{gen: gen, eval: eval, s: New()}
}

// Snapshot returns the current session.
func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s
}

// OnTransition registers fn to run after every state change.
func (m *Machine) OnTransition(fn TransitionFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// apply runs fn under the lock and notifies observers after releasing it.
// When want is non-nil, fn only runs if the session has not been reset
// since *want was captured. The returned epoch identifies the session
// generation the transition applied to.
func (m *Machine) apply(want *uint64, fn func(Session) (Session, error)) (Session, uint64, error) {
	m.mu.Lock()
	if want != nil && *want != m.epoch {
		s, epoch := m.s, m.epoch
		m.mu.Unlock()
		return s, epoch, ErrStale
	}
	prev := m.s
	next, err := fn(prev)
	m.s = next
	epoch := m.epoch
	observers := m.observers
	m.mu.Unlock()

	if prev.State != next.State {
		for _, o := range observers {
			o(prev, next)
		}
	}
	return next, epoch, err
}

func (m *Machine) ChooseLevel(level exercise.Level) (Session, error) {
	s, _, err := m.apply(nil, func(s Session) (Session, error) {
		return SelectLevel(s, level)
	})
	return s, err
}

// ChooseMode selects mode and blocks until the exercise is generated. If
// ctx ends during generation the session returns to the mode menu and
// ctx's error is returned.
func (m *Machine) ChooseMode(ctx context.Context, mode exercise.Mode) (Session, error) {
	s, epoch, err := m.apply(nil, func(s Session) (Session, error) {
		return SelectMode(s, mode)
	})
	if err != nil {
		return s, err
	}

	ex := m.gen.Generate(ctx, s.Level, s.Mode)
	if cerr := ctx.Err(); cerr != nil {
		s, _, err := m.apply(&epoch, ExerciseFailed)
		if err != nil {
			return s, err
		}
		return s, cerr
	}

	s, _, err = m.apply(&epoch, func(s Session) (Session, error) {
		return ExerciseReady(s, ex)
	})
	return s, err
}

func (m *Machine) Back() (Session, error) {
	s, _, err := m.apply(nil, Back)
	return s, err
}

// SubmitText submits text and blocks until it is assessed. On assessment
// failure the session is back on the writing screen and the evaluator's
// error is returned.
func (m *Machine) SubmitText(ctx context.Context, text string) (Session, error) {
	s, epoch, err := m.apply(nil, func(s Session) (Session, error) {
		return Submit(s, text)
	})
	if err != nil {
		return s, err
	}

	res, aerr := m.eval.Assess(ctx, text, *s.Exercise, s.Level)
	if aerr != nil {
		s, _, err := m.apply(&epoch, AssessmentFailed)
		if err != nil {
			return s, err
		}
		return s, aerr
	}

	s, _, err = m.apply(&epoch, func(s Session) (Session, error) {
		return AssessmentReady(s, *res)
	})
	return s, err
}

// Reset returns to the level menu. Any in-flight request is orphaned.
func (m *Machine) Reset() Session {
	s, _, _ := m.apply(nil, func(s Session) (Session, error) {
		m.epoch++
		return Reset(s), nil
	})
	return s
}
