package session

import (
	"errors"
	"fmt"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
)

// ErrNoLevel is returned when a mode is chosen before a level.
var ErrNoLevel = errors.New("no proficiency level selected")

// Every transition clears Err first. An invalid transition returns the
// session otherwise unchanged, together with a *TransitionError.

func invalid(s Session, event string) (Session, error) {
	return s, &TransitionError{From: s.State, Event: event}
}

// SelectLevel stores the level and moves to the mode menu.
func SelectLevel(s Session, level exercise.Level) (Session, error) {
	s.Err = ""
	if s.State != SelectingLevel {
		return invalid(s, "select level")
	}
	if !level.Valid() {
		return s, fmt.Errorf("invalid level %d", int(level))
	}
	s.Level = level
	s.State = SelectingMode
	return s, nil
}

// SelectMode stores the mode and starts generation. A session without a
// level stays on the mode menu with the generation failure message.
func SelectMode(s Session, mode exercise.Mode) (Session, error) {
	s.Err = ""
	if s.State != SelectingMode {
		return invalid(s, "select mode")
	}
	if !mode.Valid() {
		return s, fmt.Errorf("invalid mode %d", int(mode))
	}
	if !s.Level.Valid() {
		s.Mode = 0
		s.Exercise = nil
		s.Err = MsgGenerateFailed
		return s, ErrNoLevel
	}
	s.Mode = mode
	s.Exercise = nil
	s.State = GeneratingExercise
	return s, nil
}

// ExerciseReady moves to the writing screen with ex.
func ExerciseReady(s Session, ex exercise.Exercise) (Session, error) {
	s.Err = ""
	if s.State != GeneratingExercise {
		return invalid(s, "accept exercise")
	}
	s.Exercise = &ex
	s.Draft = ""
	s.State = Writing
	return s, nil
}

// ExerciseFailed returns to the mode menu with the generic message. The
// generator never fails outwardly; this edge exists for callers that
// abandon generation.
func ExerciseFailed(s Session) (Session, error) {
	s.Err = ""
	if s.State != GeneratingExercise {
		return invalid(s, "fail exercise")
	}
	s.Mode = 0
	s.Exercise = nil
	s.Err = MsgGenerateFailed
	s.State = SelectingMode
	return s, nil
}

// Back leaves the mode menu for the level menu, clearing the mode.
func Back(s Session) (Session, error) {
	s.Err = ""
	if s.State != SelectingMode {
		return invalid(s, "go back")
	}
	s.Mode = 0
	s.State = SelectingLevel
	return s, nil
}

// Submit records text as the draft and starts assessment.
func Submit(s Session, text string) (Session, error) {
	s.Err = ""
	if s.State != Writing || s.Exercise == nil {
		return invalid(s, "submit")
	}
	if n, want := exercise.WordCount(text), s.Exercise.MinWords(); n < want {
		s.Draft = text
		return s, &ShortDraftError{Min: want, Got: n}
	}
	s.Draft = text
	s.State = Analyzing
	return s, nil
}

// AssessmentReady moves to the feedback screen with res.
func AssessmentReady(s Session, res assessment.Result) (Session, error) {
	s.Err = ""
	if s.State != Analyzing || s.Exercise == nil {
		return invalid(s, "accept assessment")
	}
	s.Result = &res
	s.State = Feedback
	return s, nil
}

// AssessmentFailed returns to the writing screen with the draft intact.
func AssessmentFailed(s Session) (Session, error) {
	s.Err = ""
	if s.State != Analyzing {
		return invalid(s, "fail assessment")
	}
	s.Err = MsgAssessFailed
	s.State = Writing
	return s, nil
}

// Reset discards everything and returns to the level menu. It is valid
// from every state.
func Reset(Session) Session {
	return New()
}
