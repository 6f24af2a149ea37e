package exercise

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"beginner", Beginner, false},
		{"INTERMEDIATE", Intermediate, false},
		{"Advanced (C1-C2)", Advanced, false},
		{"  advanced ", Advanced, false},
		{"expert", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(m.Slug())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.Slug(), got, err)
		}
		got, err = ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("poetry"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestZeroValuesAreUnset(t *testing.T) {
	var l Level
	var m Mode
	if l.Valid() || m.Valid() {
		t.Error("zero level and mode must be invalid")
	}
	if _, err := l.MarshalText(); err == nil {
		t.Error("marshalling an unset level should fail")
	}
}

func TestInteraction(t *testing.T) {
	tests := []struct {
		name        string
		ex          Exercise
		want        Interaction
		minWords    int
		placeholder string
	}{
		{"dictation", Exercise{AudioData: []byte{1, 2}, HiddenText: "x", Mode: Dictation}, InteractListen, 3, "Type what you hear..."},
		{"cloze", Exercise{ClozeSentence: "I _______ home.", HiddenText: "I went home.", Mode: FillInBlanks}, InteractCloze, 3, "Type the full sentence with the missing words filled in..."},
		{"sentence", Exercise{Title: "Use however", Mode: SentenceChallenge}, InteractSentence, 3, "Start typing your response here..."},
		{"sentence by title", Exercise{Title: "Sentence Builder"}, InteractSentence, 3, "Start typing your response here..."},
		{"grammar titled sentence", Exercise{Title: "Complex Sentences", Mode: Grammar}, InteractSentence, 3, "Start typing your response here..."},
		{"paragraph", Exercise{Title: "My Weekend", Mode: FreeWrite}, InteractParagraph, 10, "Start typing your response here..."},
		{"fallback", Fallback(), InteractParagraph, 10, "Start typing your response here..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ex.Interaction(); got != tt.want {
				t.Errorf("Interaction() = %v, want %v", got, tt.want)
			}
			if got := tt.ex.MinWords(); got != tt.minWords {
				t.Errorf("MinWords() = %d, want %d", got, tt.minWords)
			}
			if got := tt.ex.Placeholder(); got != tt.placeholder {
				t.Errorf("Placeholder() = %q, want %q", got, tt.placeholder)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := map[string]int{
		"":                        0,
		"   ":                     0,
		"hello":                   1,
		"the cat  sat\non\tthe mat": 6,
	}
	for in, want := range tests {
		if got := WordCount(in); got != want {
			t.Errorf("WordCount(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestExerciseJSON(t *testing.T) {
	ex := Exercise{
		Title:       "Dictation Challenge",
		Description: "d",
		Hint:        "h",
		TargetFocus: "f",
		AudioData:   []byte{0x00, 0x7f},
		HiddenText:  "Hi.",
		Mode:        Dictation,
	}
	b, err := json.Marshal(ex)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"targetFocus":"f"`, `"audioData":"AH8="`, `"mode":"dictation"`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON missing %s: %s", want, s)
		}
	}
	if strings.Contains(s, "clozeSentence") {
		t.Errorf("empty clozeSentence should be omitted: %s", s)
	}

	fb, _ := json.Marshal(Fallback())
	if strings.Contains(string(fb), `"mode"`) {
		t.Errorf("fallback should omit mode: %s", fb)
	}
}

func TestRedacted(t *testing.T) {
	ex := Exercise{Title: "t", HiddenText: "secret", ClozeSentence: "_______"}
	r := ex.Redacted()
	if r.HiddenText != "" {
		t.Error("Redacted kept hiddenText")
	}
	if ex.HiddenText != "secret" {
		t.Error("Redacted modified the original")
	}
	if r.ClozeSentence != "_______" {
		t.Error("Redacted dropped clozeSentence")
	}
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		v       Validator
		ex      Exercise
		mode    Mode
		wantErr bool
	}{
		{"structural ok", &StructuralValidator{}, Fallback(), Grammar, false},
		{"structural missing hint", &StructuralValidator{}, Exercise{Title: "t", Description: "d", TargetFocus: "f"}, Grammar, true},
		{"cloze ok", &ClozeValidator{}, Exercise{HiddenText: "I ran.", ClozeSentence: "I ___."}, FillInBlanks, false},
		{"cloze missing sentence", &ClozeValidator{}, Exercise{HiddenText: "I ran."}, FillInBlanks, true},
		{"cloze two underscores", &ClozeValidator{}, Exercise{HiddenText: "I ran.", ClozeSentence: "I __."}, FillInBlanks, true},
		{"cloze without hiddenText", &ClozeValidator{}, Exercise{}, FillInBlanks, false},
		{"cloze other mode", &ClozeValidator{}, Exercise{HiddenText: "x"}, Dictation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := tt.ex
			err := tt.v.Validate(&ex, tt.mode)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_ValidatorChain(t *testing.T) {
	cfg := DefaultConfig()
	names := []string{"structural", "cloze"}
	if len(cfg.Validators) != len(names) {
		t.Fatalf("expected %d validators, got %d", len(names), len(cfg.Validators))
	}
	for i, v := range cfg.Validators {
		if v.Name() != names[i] {
			t.Errorf("validator %d: expected %q, got %q", i, names[i], v.Name())
		}
	}
}
