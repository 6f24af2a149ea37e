package server

import (
	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/session"
)

type optionView struct {
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type exerciseView struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Hint          string `json:"hint"`
	TargetFocus   string `json:"targetFocus"`
	ClozeSentence string `json:"clozeSentence,omitempty"`
	HiddenText    string `json:"hiddenText,omitempty"`
	HasAudio      bool   `json:"hasAudio"`
	Interaction   string `json:"interaction"`
	MinWords      int    `json:"minWords"`
	Placeholder   string `json:"placeholder"`
}

type sessionView struct {
	ID       string             `json:"id"`
	State    session.State      `json:"state"`
	Level    string             `json:"level,omitempty"`
	Mode     string             `json:"mode,omitempty"`
	Exercise *exerciseView      `json:"exercise,omitempty"`
	Result   *assessment.Result `json:"result,omitempty"`
	Headline string             `json:"headline,omitempty"`
	Band     assessment.Band    `json:"band,omitempty"`
	Draft    string             `json:"draft,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// newSessionView renders s for clients. The reference answer is only
// revealed once the submission has been assessed.
func newSessionView(id string, s session.Session) sessionView {
	v := sessionView{
		ID:     id,
		State:  s.State,
		Level:  s.Level.Slug(),
		Mode:   s.Mode.Slug(),
		Result: s.Result,
		Draft:  s.Draft,
		Error:  s.Err,
	}
	if s.Exercise != nil {
		ex := *s.Exercise
		if s.State != session.Feedback {
			ex = ex.Redacted()
		}
		v.Exercise = &exerciseView{
			Title:         ex.Title,
			Description:   ex.Description,
			Hint:          ex.Hint,
			TargetFocus:   ex.TargetFocus,
			ClozeSentence: ex.ClozeSentence,
			HiddenText:    ex.HiddenText,
			HasAudio:      ex.HasAudio(),
			Interaction:   ex.Interaction().String(),
			MinWords:      ex.MinWords(),
			Placeholder:   ex.Placeholder(),
		}
	}
	if s.Result != nil {
		v.Headline = s.Result.Headline()
		v.Band = s.Result.Band()
	}
	return v
}

func levelOptions() []optionView {
	out := make([]optionView, 0, len(exercise.Levels))
	for _, l := range exercise.Levels {
		out = append(out, optionView{Slug: l.Slug(), Label: l.String(), Description: l.Description()})
	}
	return out
}

func modeOptions() []optionView {
	out := make([]optionView, 0, len(exercise.Modes))
	for _, m := range exercise.Modes {
		out = append(out, optionView{Slug: m.Slug(), Label: m.String(), Description: m.Description()})
	}
	return out
}
