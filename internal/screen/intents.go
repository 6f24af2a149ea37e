package screen

import "github.com/abhisek/linguaflow/internal/exercise"

// Screens report what the learner did with these messages. The app model
// applies them to the session and decides which screen comes next.

type SelectLevelMsg struct {
	Level exercise.Level
}

type SelectModeMsg struct {
	Mode exercise.Mode
}

// BackMsg leaves the mode menu for the level menu.
type BackMsg struct{}

type SubmitMsg struct {
	Text string
}

// PlayAudioMsg asks for the dictation clip to be played.
type PlayAudioMsg struct{}

// AudioStateMsg reports playback progress back to the writing screen.
type AudioStateMsg struct {
	Playing bool
	Err     error
}

// ResetMsg starts over from the level menu.
type ResetMsg struct{}
