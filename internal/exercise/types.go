package exercise

import (
	"strings"
)

// Exercise is one generated writing or listening prompt plus its answer
// metadata. It is produced once by a Generator and never modified after.
type Exercise struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Hint        string `json:"hint"`
	TargetFocus string `json:"targetFocus"`

	// AudioData is raw 16-bit mono PCM at 24 kHz. Set only for dictation.
	AudioData []byte `json:"audioData,omitempty"`

	// HiddenText is the reference answer. When set, submissions are
	// assessed by exact match.
	HiddenText string `json:"hiddenText,omitempty"`

	// ClozeSentence is HiddenText with key words replaced by blanks.
	ClozeSentence string `json:"clozeSentence,omitempty"`

	// Mode is the mode this exercise was generated for. Zero for the
	// fallback exercise.
	Mode Mode `json:"mode,omitempty"`
}

// Interaction describes how the learner responds to an exercise.
type Interaction int

const (
	InteractParagraph Interaction = iota
	InteractSentence
	InteractCloze
	InteractListen
)

func (i Interaction) String() string {
	switch i {
	case InteractSentence:
		return "sentence"
	case InteractCloze:
		return "cloze"
	case InteractListen:
		return "listen"
	default:
		return "paragraph"
	}
}

func (e Exercise) HasAudio() bool   { return len(e.AudioData) > 0 }
func (e Exercise) IsCloze() bool    { return e.ClozeSentence != "" }
func (e Exercise) ExactMatch() bool { return e.HiddenText != "" }

// Interaction derives the response style from the populated fields. Any
// exercise whose title mentions "sentence" is answered as a sentence
// challenge, whatever mode produced it.
func (e Exercise) Interaction() Interaction {
	switch {
	case e.HasAudio():
		return InteractListen
	case e.IsCloze():
		return InteractCloze
	case e.Mode == SentenceChallenge:
		return InteractSentence
	case strings.Contains(strings.ToLower(e.Title), "sentence"):
		return InteractSentence
	}
	return InteractParagraph
}

// MinWords is the smallest submission accepted for this exercise.
func (e Exercise) MinWords() int {
	if e.Interaction() == InteractParagraph {
		return 10
	}
	return 3
}

// Placeholder is the empty-editor prompt text.
func (e Exercise) Placeholder() string {
	switch e.Interaction() {
	case InteractListen:
		return "Type what you hear..."
	case InteractCloze:
		return "Type the full sentence with the missing words filled in..."
	}
	return "Start typing your response here..."
}

// Redacted returns a copy safe to show before the learner answers: the
// reference answer is removed.
func (e Exercise) Redacted() Exercise {
	e.HiddenText = ""
	return e
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
