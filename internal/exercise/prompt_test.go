package exercise

import (
	"strings"
	"testing"
)

func TestBuildUserMessage(t *testing.T) {
	tests := []struct {
		level    Level
		mode     Mode
		contains []string
	}{
		{Beginner, Grammar, []string{
			"Create an English exercise for a student at Beginner (A1-A2) level.",
			"The focus is: Grammar Focus.",
			"paragraph of about 3-5 sentences",
		}},
		{Advanced, FreeWrite, []string{"The focus is: Free Writing."}},
		{Intermediate, FillInBlanks, []string{
			"Create a Fill-in-the-Blanks exercise for Intermediate (B1-B2).",
			"replaced by '_______'",
			"Store the FULL, original sentence in 'hiddenText'.",
		}},
		{Intermediate, SentenceChallenge, []string{
			"Create a Sentence Writing Challenge.",
			"Use the word 'However'",
		}},
		{Advanced, Dictation, []string{
			"Create a Dictation exercise for a student at Advanced (C1-C2) level.",
			"hiddenText: The exact sentence you generated.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.mode.Slug(), func(t *testing.T) {
			msg := buildUserMessage(tt.level, tt.mode)
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("prompt missing %q:\n%s", want, msg)
				}
			}
		})
	}
}

func TestBuildUserMessage_DictationHasNoHeader(t *testing.T) {
	msg := buildUserMessage(Beginner, Dictation)
	if strings.Contains(msg, "Create an English exercise") {
		t.Errorf("dictation prompt should be standalone:\n%s", msg)
	}
}
