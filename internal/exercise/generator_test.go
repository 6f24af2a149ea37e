package exercise

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/linguaflow/internal/llm"
)

func paragraphJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "A Place You Love",
		"description": "Describe a place that is special to you in 3-5 sentences.",
		"hint": "Think about what you see, hear, and smell there.",
		"targetFocus": "Descriptive adjectives",
		"hiddenText": "",
		"clozeSentence": ""
	}`)
}

func dictationJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Dictation Challenge",
		"description": "Listen to the audio carefully and type exactly what you hear.",
		"hint": "It's about a pet.",
		"targetFocus": "Simple Past Tense",
		"hiddenText": "The cat sat on the mat."
	}`)
}

func clozeJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Missing Prepositions",
		"description": "Complete the sentence by filling in the missing words. Rewrite the full sentence.",
		"hint": "Think about place and time.",
		"targetFocus": "Prepositions",
		"hiddenText": "She has lived in London since 2015 and works at a small bakery.",
		"clozeSentence": "She has lived _______ London _______ 2015 and works at a small bakery."
	}`)
}

func sentenceJSON() json.RawMessage {
	return json.RawMessage(`{
		"title": "Sentence Challenge",
		"description": "Write one sentence that uses the word 'however'.",
		"hint": "Contrast two preferences.",
		"targetFocus": "Contrast connectors",
		"hiddenText": "",
		"clozeSentence": ""
	}`)
}

func responseFor(mode Mode) json.RawMessage {
	switch mode {
	case Dictation:
		return dictationJSON()
	case FillInBlanks:
		return clozeJSON()
	case SentenceChallenge:
		return sentenceJSON()
	}
	return paragraphJSON()
}

var pcm = []byte{0x00, 0x01, 0xff, 0x7f}

func TestGenerate_AllLevelsAndModes(t *testing.T) {
	for _, level := range Levels {
		for _, mode := range Modes {
			t.Run(level.Slug()+"/"+mode.Slug(), func(t *testing.T) {
				mock := llm.NewMockProvider(llm.MockResponse{Content: responseFor(mode)})
				mock.AddSpeech(llm.MockSpeech{Audio: pcm})

				ex := New(mock, DefaultConfig()).Generate(context.Background(), level, mode)

				if ex.Title == "" || ex.Description == "" || ex.Hint == "" || ex.TargetFocus == "" {
					t.Fatalf("required field empty: %+v", ex)
				}
				if ex.Mode != mode {
					t.Errorf("mode = %v, want %v", ex.Mode, mode)
				}
				if mode == Dictation && !ex.HasAudio() {
					t.Error("dictation exercise has no audio")
				}
				if mode == FillInBlanks && ex.HiddenText != "" && !HasBlank(ex.ClozeSentence) {
					t.Errorf("cloze sentence has no blank: %q", ex.ClozeSentence)
				}

				wantSpeech := 0
				if mode == Dictation {
					wantSpeech = 1
				}
				if mock.CallCount() != 1 {
					t.Errorf("generate calls = %d, want 1", mock.CallCount())
				}
				if mock.SpeechCallCount() != wantSpeech {
					t.Errorf("speech calls = %d, want %d", mock.SpeechCallCount(), wantSpeech)
				}
			})
		}
	}
}

func TestGenerate_Dictation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: dictationJSON()})
	mock.AddSpeech(llm.MockSpeech{Audio: pcm})

	ex := New(mock, DefaultConfig()).Generate(context.Background(), Intermediate, Dictation)

	if ex.HiddenText != "The cat sat on the mat." {
		t.Errorf("hiddenText = %q", ex.HiddenText)
	}
	if !reflect.DeepEqual(ex.AudioData, pcm) {
		t.Errorf("audio = %v, want %v", ex.AudioData, pcm)
	}
	if ex.Interaction() != InteractListen {
		t.Errorf("interaction = %v, want listen", ex.Interaction())
	}

	sc := mock.SpeechCalls[0]
	if sc.Text != "The cat sat on the mat." {
		t.Errorf("speech text = %q", sc.Text)
	}
	if sc.Voice != "Fenrir" {
		t.Errorf("speech voice = %q, want Fenrir", sc.Voice)
	}

	// Dictation uses its own prompt, not the common header.
	msg := mock.Calls[0].Messages[0].Content
	if !strings.HasPrefix(msg, "Create a Dictation exercise for a student at Intermediate (B1-B2) level.") {
		t.Errorf("unexpected dictation prompt: %q", msg)
	}
}

func TestGenerate_DictationWithoutHiddenTextSpeaksPlaceholder(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: paragraphJSON()})
	mock.AddSpeech(llm.MockSpeech{Audio: pcm})

	ex := New(mock, DefaultConfig()).Generate(context.Background(), Beginner, Dictation)

	if mock.SpeechCallCount() != 1 {
		t.Fatalf("speech calls = %d, want 1", mock.SpeechCallCount())
	}
	if got := mock.SpeechCalls[0].Text; got != "Hello" {
		t.Errorf("speech text = %q, want Hello", got)
	}
	if !ex.HasAudio() || ex.HiddenText != "" {
		t.Errorf("unexpected exercise: %+v", ex)
	}
}

func TestGenerate_ClearsFieldsForOtherModes(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: clozeJSON()})

	ex := New(mock, DefaultConfig()).Generate(context.Background(), Advanced, Grammar)

	if ex.HiddenText != "" || ex.ClozeSentence != "" {
		t.Errorf("grammar exercise kept answer fields: %+v", ex)
	}
	if ex.ExactMatch() {
		t.Error("grammar exercise should use open rubric")
	}
}

func TestGenerate_FallbackOnEveryFailure(t *testing.T) {
	transport := &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}

	tests := []struct {
		name   string
		mode   Mode
		resp   llm.MockResponse
		speech *llm.MockSpeech
	}{
		{"transport", Grammar, llm.MockResponse{Err: transport}, nil},
		{"malformed JSON", Vocabulary, llm.MockResponse{Content: json.RawMessage(`{not json`)}, nil},
		{"missing title", FreeWrite, llm.MockResponse{Content: json.RawMessage(`{"description":"d","hint":"h","targetFocus":"f"}`)}, nil},
		{"cloze without blank", FillInBlanks, llm.MockResponse{Content: json.RawMessage(`{"title":"t","description":"d","hint":"h","targetFocus":"f","hiddenText":"I go home.","clozeSentence":"I go home."}`)}, nil},
		{"dictation text call fails", Dictation, llm.MockResponse{Err: transport}, nil},
		{"dictation speech fails", Dictation, llm.MockResponse{Content: dictationJSON()}, &llm.MockSpeech{Err: transport}},
		{"dictation speech empty", Dictation, llm.MockResponse{Content: dictationJSON()}, &llm.MockSpeech{}},
		{"dictation speech silent", Dictation, llm.MockResponse{Content: dictationJSON()}, &llm.MockSpeech{Audio: make([]byte, 64)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			if tt.speech != nil {
				mock.AddSpeech(*tt.speech)
			}

			ex := New(mock, DefaultConfig()).Generate(context.Background(), Intermediate, tt.mode)

			if !reflect.DeepEqual(ex, Fallback()) {
				t.Errorf("got %+v, want fallback", ex)
			}
		})
	}
}

func TestGenerate_DictationTextFailureSkipsSpeech(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	mock.AddSpeech(llm.MockSpeech{Audio: pcm})

	New(mock, DefaultConfig()).Generate(context.Background(), Beginner, Dictation)

	if mock.SpeechCallCount() != 0 {
		t.Errorf("speech called %d times after text failure", mock.SpeechCallCount())
	}
}

func TestGenerate_InvalidSelectionFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: paragraphJSON()})

	ex := New(mock, DefaultConfig()).Generate(context.Background(), 0, Grammar)

	if !reflect.DeepEqual(ex, Fallback()) {
		t.Errorf("got %+v, want fallback", ex)
	}
	if mock.CallCount() != 0 {
		t.Errorf("LLM called %d times for an invalid level", mock.CallCount())
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: paragraphJSON()})

	New(mock, DefaultConfig()).Generate(context.Background(), Beginner, Vocabulary)

	req := mock.Calls[0]
	if req.System != systemPrompt {
		t.Errorf("system = %q", req.System)
	}
	if req.Schema != ExerciseSchema {
		t.Error("expected ExerciseSchema")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
}
