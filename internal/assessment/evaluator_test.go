package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/llm"
)

func dictationExercise() exercise.Exercise {
	return exercise.Exercise{
		Title:       "Dictation Challenge",
		Description: "Listen to the audio carefully and type exactly what you hear.",
		Hint:        "It's about a pet.",
		TargetFocus: "Simple Past Tense",
		AudioData:   []byte{0, 1},
		HiddenText:  "The cat sat on the mat.",
		Mode:        exercise.Dictation,
	}
}

func sentenceExercise() exercise.Exercise {
	return exercise.Exercise{
		Title:       "Sentence Challenge",
		Description: "Write one sentence that uses the word 'however'.",
		Hint:        "Contrast two preferences.",
		TargetFocus: "Contrast connectors",
		Mode:        exercise.SentenceChallenge,
	}
}

func TestAssess_ExactMatchForcesPerfectScore(t *testing.T) {
	// The model nitpicks capitalization; normalization overrides it.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"score": 95,
		"correctedVersion": "The cat sat on the mat.",
		"generalComment": "Almost perfect!",
		"improvedVocabulary": [],
		"feedbackItems": [{"original":"the","correction":"The","explanation":"Capitalize the first word.","type":"grammar"}]
	}`)})

	res, err := New(mock, DefaultConfig()).Assess(context.Background(), "the cat sat on the mat", dictationExercise(), exercise.Beginner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("score = %d, want 100", res.Score)
	}
	if len(res.FeedbackItems) != 0 {
		t.Errorf("feedbackItems = %v, want empty", res.FeedbackItems)
	}
	if res.CorrectedVersion != "The cat sat on the mat." {
		t.Errorf("correctedVersion = %q", res.CorrectedVersion)
	}
	if res.GeneralComment != "Almost perfect!" {
		t.Errorf("generalComment = %q", res.GeneralComment)
	}

	msg := mock.Calls[0].Messages[0].Content
	for _, want := range []string{
		"Exact Match Required",
		`Target Text (Correct Answer): "The cat sat on the mat."`,
		`User Input: "the cat sat on the mat"`,
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestAssess_ExactMismatchKeepsModelVerdict(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"score": 70,
		"correctedVersion": "The cat sat on the mat.",
		"generalComment": "Close!",
		"improvedVocabulary": [],
		"feedbackItems": [{"original":"hat","correction":"mat","explanation":"Listen for the first sound.","type":"vocabulary"}]
	}`)})

	res, err := New(mock, DefaultConfig()).Assess(context.Background(), "The cat sat on the hat.", dictationExercise(), exercise.Beginner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 70 || len(res.FeedbackItems) != 1 {
		t.Errorf("model verdict changed: %+v", res)
	}
	if res.FeedbackItems[0].Type != TypeVocabulary {
		t.Errorf("item type = %q", res.FeedbackItems[0].Type)
	}
}

func TestAssess_OpenRubric(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"score": 78,
		"correctedVersion": "I like tea; however, I prefer coffee in the morning.",
		"generalComment": "Good use of contrast.",
		"improvedVocabulary": ["favour", "savour", "relish"],
		"feedbackItems": [{"original":"tea however","correction":"tea; however,","explanation":"'However' joining two clauses needs a semicolon before and a comma after.","type":"grammar"}]
	}`)})

	text := "I like tea however I prefer coffee in the morning."
	res, err := New(mock, DefaultConfig()).Assess(context.Background(), text, sentenceExercise(), exercise.Intermediate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Errorf("score out of range: %d", res.Score)
	}
	if len(res.FeedbackItems) == 0 {
		t.Fatal("expected the punctuation before 'however' to be flagged")
	}
	if len(res.ImprovedVocabulary) != 3 {
		t.Errorf("improvedVocabulary = %v", res.ImprovedVocabulary)
	}

	req := mock.Calls[0]
	if req.System != systemPrompt {
		t.Errorf("system = %q", req.System)
	}
	if req.Schema != AssessmentSchema {
		t.Error("expected AssessmentSchema")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"Student Level: Intermediate (B1-B2)",
		"Exercise Topic: Sentence Challenge - Write one sentence that uses the word 'however'.",
		`Student Text: "` + text + `"`,
		"Be encouraging but precise.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "Exact Match") {
		t.Error("open rubric prompt should not request exact match")
	}
}

func TestAssess_PropagatesFailure(t *testing.T) {
	remote := &llm.ErrProviderUnavailable{Err: errors.New("503")}

	tests := []struct {
		name string
		ex   exercise.Exercise
		resp llm.MockResponse
	}{
		{"exact-match transport", dictationExercise(), llm.MockResponse{Err: remote}},
		{"open-rubric transport", sentenceExercise(), llm.MockResponse{Err: remote}},
		{"exact-match malformed", dictationExercise(), llm.MockResponse{Content: json.RawMessage(`[1,2`)}},
		{"open-rubric malformed", sentenceExercise(), llm.MockResponse{Content: json.RawMessage(`"not an object"`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			res, err := New(mock, DefaultConfig()).Assess(context.Background(), "The cat sat on the mat.", tt.ex, exercise.Advanced)
			if err == nil {
				t.Fatalf("expected error, got %+v", res)
			}
			if res != nil {
				t.Errorf("expected nil result on failure")
			}
		})
	}
}

func TestAssess_TransportErrorIsWrapped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := New(mock, DefaultConfig()).Assess(context.Background(), "hello there friend", sentenceExercise(), exercise.Beginner)

	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("expected wrapped ErrRateLimit, got %v", err)
	}
}

func TestAssess_EmptySubmission(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig()).Assess(context.Background(), "   \n", sentenceExercise(), exercise.Beginner)
	if !errors.Is(err, ErrEmptySubmission) {
		t.Errorf("err = %v, want ErrEmptySubmission", err)
	}
	if mock.CallCount() != 0 {
		t.Error("empty submission should not reach the provider")
	}
}

func TestAssess_NilListsBecomeEmpty(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"score": 50, "correctedVersion": "x", "generalComment": "y"
	}`)})
	res, err := New(mock, DefaultConfig()).Assess(context.Background(), "some words here", sentenceExercise(), exercise.Beginner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FeedbackItems == nil || res.ImprovedVocabulary == nil {
		t.Errorf("lists should be non-nil: %+v", res)
	}
}
