package session

import (
	"fmt"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
)

// State is the screen the learner is on.
type State int

const (
	SelectingLevel     State = iota // Choosing a proficiency level
	SelectingMode                   // Choosing a practice mode
	GeneratingExercise              // Waiting for the exercise
	Writing                         // Composing a response
	Analyzing                       // Waiting for the assessment
	Feedback                        // Reading the assessment
)

var stateNames = [...]string{
	SelectingLevel:     "selecting-level",
	SelectingMode:      "selecting-mode",
	GeneratingExercise: "generating-exercise",
	Writing:            "writing",
	Analyzing:          "analyzing",
	Feedback:           "feedback",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Busy reports whether a remote call is in flight in this state.
func (s State) Busy() bool {
	return s == GeneratingExercise || s == Analyzing
}

// User-facing failure messages.
const (
	MsgGenerateFailed = "Failed to generate exercise. Please try again."
	MsgAssessFailed   = "Failed to analyze writing. Please try again."
)

// Session is the whole of one learner's progress through the flow. It is
// treated as an immutable value: transitions return a new Session and
// never modify the Exercise or Result they point to.
//
// The zero value is a fresh session on the level menu.
type Session struct {
	State    State
	Level    exercise.Level
	Mode     exercise.Mode
	Exercise *exercise.Exercise
	Result   *assessment.Result

	// Draft is the last submitted text. It survives a failed assessment so
	// the learner can retry without retyping.
	Draft string

	// Err is a human-readable message from the last failed transition.
	Err string
}

// New returns a session on the level menu.
func New() Session {
	return Session{}
}

// TransitionError reports an event that is not valid in the current state.
type TransitionError struct {
	From  State
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Event, e.From)
}

// ShortDraftError reports a submission below the exercise's word minimum.
type ShortDraftError struct {
	Min, Got int
}

func (e *ShortDraftError) Error() string {
	return fmt.Sprintf("please write at least %d words (got %d)", e.Min, e.Got)
}
