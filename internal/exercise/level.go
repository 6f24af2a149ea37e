package exercise

import (
	"fmt"
	"strings"
)

// Level is the learner's proficiency band. The zero value means no level
// has been selected.
type Level int

const (
	Beginner Level = iota + 1
	Intermediate
	Advanced
)

// Levels lists every level in menu order.
var Levels = []Level{Beginner, Intermediate, Advanced}

var levelInfo = map[Level]struct {
	label, slug, desc string
}{
	Beginner:     {"Beginner (A1-A2)", "beginner", "Building foundations, basic sentence structures, and essential vocabulary."},
	Intermediate: {"Intermediate (B1-B2)", "intermediate", "Connecting ideas, using complex tenses, and conversational fluency."},
	Advanced:     {"Advanced (C1-C2)", "advanced", "Nuanced expression, academic/professional writing, and idiomatic usage."},
}

// String returns the label used in prompts and menus.
func (l Level) String() string {
	if info, ok := levelInfo[l]; ok {
		return info.label
	}
	return "Unknown"
}

func (l Level) Slug() string { return levelInfo[l].slug }

// Description is the one-line summary shown on the level menu.
func (l Level) Description() string { return levelInfo[l].desc }

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	_, ok := levelInfo[l]
	return ok
}

// ParseLevel accepts a slug ("intermediate") or a label
// ("Intermediate (B1-B2)"), case-insensitively.
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	for _, l := range Levels {
		if strings.EqualFold(s, l.Slug()) || strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid level %d", int(l))
	}
	return []byte(l.Slug()), nil
}

func (l *Level) UnmarshalText(b []byte) error {
	v, err := ParseLevel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Mode is the kind of practice the learner picked. The zero value means no
// mode has been selected.
type Mode int

const (
	Grammar Mode = iota + 1
	Vocabulary
	FreeWrite
	Dictation
	SentenceChallenge
	FillInBlanks
)

// Modes lists every mode in menu order.
var Modes = []Mode{Grammar, Vocabulary, FillInBlanks, SentenceChallenge, Dictation, FreeWrite}

var modeInfo = map[Mode]struct {
	label, slug, desc string
}{
	Grammar:           {"Grammar Focus", "grammar", "Practice specific rules like past tense, prepositions, or conditionals."},
	Vocabulary:        {"Vocabulary Expansion", "vocabulary", "Learn new synonyms and descriptive words to enrich your writing."},
	FreeWrite:         {"Free Writing", "free-write", "Write about a random topic and get comprehensive feedback on everything."},
	Dictation:         {"Dictation Practice", "dictation", "Listen to a sentence and type exactly what you hear to improve listening."},
	SentenceChallenge: {"Sentence Challenge", "sentence", "Write a perfect sentence based on a specific hint or word."},
	FillInBlanks:      {"Fill in the Blanks", "cloze", "Complete the sentence by finding the missing words."},
}

func (m Mode) String() string {
	if info, ok := modeInfo[m]; ok {
		return info.label
	}
	return "Unknown"
}

func (m Mode) Slug() string        { return modeInfo[m].slug }
func (m Mode) Description() string { return modeInfo[m].desc }

func (m Mode) Valid() bool {
	_, ok := modeInfo[m]
	return ok
}

// ParseMode accepts a slug ("cloze") or a label ("Fill in the Blanks"),
// case-insensitively.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	for _, m := range Modes {
		if strings.EqualFold(s, m.Slug()) || strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mode %d", int(m))
	}
	return []byte(m.Slug()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
