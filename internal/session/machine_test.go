package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/llm"
)

type stubGenerator struct {
	ex    exercise.Exercise
	calls int
	// block, when set, is received from before returning.
	block chan struct{}
}

func (g *stubGenerator) Generate(_ context.Context, _ exercise.Level, _ exercise.Mode) exercise.Exercise {
	g.calls++
	if g.block != nil {
		<-g.block
	}
	return g.ex
}

type stubEvaluator struct {
	res *assessment.Result
	err error
}

func (e *stubEvaluator) Assess(context.Context, string, exercise.Exercise, exercise.Level) (*assessment.Result, error) {
	return e.res, e.err
}

func TestMachine_HappyPath(t *testing.T) {
	gen := &stubGenerator{ex: testExercise()}
	eval := &stubEvaluator{res: &assessment.Result{Score: 88, GeneralComment: "Nice"}}
	m := NewMachine(gen, eval)

	var seen []State
	m.OnTransition(func(_, next Session) { seen = append(seen, next.State) })

	if _, err := m.ChooseLevel(exercise.Intermediate); err != nil {
		t.Fatalf("choose level: %v", err)
	}
	s, err := m.ChooseMode(context.Background(), exercise.SentenceChallenge)
	if err != nil {
		t.Fatalf("choose mode: %v", err)
	}
	if s.State != Writing || s.Exercise == nil {
		t.Fatalf("after mode: %+v", s)
	}

	s, err = m.SubmitText(context.Background(), "I like tea however I prefer coffee in the morning.")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.State != Feedback || s.Result == nil || s.Result.Score != 88 {
		t.Fatalf("after submit: %+v", s)
	}

	want := []State{SelectingMode, GeneratingExercise, Writing, Analyzing, Feedback}
	if len(seen) != len(want) {
		t.Fatalf("transitions = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, seen[i], want[i])
		}
	}

	if got := m.Reset(); got.State != SelectingLevel || got.Level != 0 {
		t.Errorf("reset: %+v", got)
	}
}

func TestMachine_AssessmentFailureReturnsToWriting(t *testing.T) {
	gen := &stubGenerator{ex: testExercise()}
	remote := errors.New("remote down")
	m := NewMachine(gen, &stubEvaluator{err: remote})

	m.ChooseLevel(exercise.Beginner)
	m.ChooseMode(context.Background(), exercise.SentenceChallenge)

	text := "I like tea however I prefer coffee."
	s, err := m.SubmitText(context.Background(), text)

	if !errors.Is(err, remote) {
		t.Fatalf("err = %v, want evaluator error", err)
	}
	if s.State != Writing || s.Err != MsgAssessFailed || s.Draft != text {
		t.Errorf("unexpected session: %+v", s)
	}
	if snap := m.Snapshot(); snap.State != Writing {
		t.Errorf("snapshot state = %v", snap.State)
	}
}

func TestMachine_RejectsConcurrentRequests(t *testing.T) {
	gen := &stubGenerator{ex: testExercise(), block: make(chan struct{})}
	m := NewMachine(gen, &stubEvaluator{})
	m.ChooseLevel(exercise.Advanced)

	started := make(chan struct{})
	m.OnTransition(func(_, next Session) {
		if next.State == GeneratingExercise {
			close(started)
		}
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.ChooseMode(context.Background(), exercise.Grammar)
	}()
	<-started

	_, err := m.ChooseMode(context.Background(), exercise.Vocabulary)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Errorf("second request err = %v, want TransitionError", err)
	}

	close(gen.block)
	wg.Wait()

	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls)
	}
	if s := m.Snapshot(); s.State != Writing || s.Mode != exercise.Grammar {
		t.Errorf("unexpected session: %+v", s)
	}
}

func TestMachine_ResetDiscardsInFlightResult(t *testing.T) {
	gen := &stubGenerator{ex: testExercise(), block: make(chan struct{})}
	m := NewMachine(gen, &stubEvaluator{})
	m.ChooseLevel(exercise.Advanced)

	started := make(chan struct{})
	m.OnTransition(func(_, next Session) {
		if next.State == GeneratingExercise {
			close(started)
		}
	})

	errc := make(chan error, 1)
	go func() {
		_, err := m.ChooseMode(context.Background(), exercise.Grammar)
		errc <- err
	}()
	<-started

	m.Reset()
	close(gen.block)

	if err := <-errc; !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
	if s := m.Snapshot(); s.State != SelectingLevel || s.Exercise != nil {
		t.Errorf("late result applied: %+v", s)
	}
}

// Scenario: dictation through the real generator and evaluator with a
// mock provider.
func TestMachine_DictationScenario(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{
			"title": "Dictation Challenge",
			"description": "Listen to the audio carefully and type exactly what you hear.",
			"hint": "It's about a pet.",
			"targetFocus": "Simple Past Tense",
			"hiddenText": "The cat sat on the mat."
		}`)},
		llm.MockResponse{Content: json.RawMessage(`{
			"score": 97,
			"correctedVersion": "The cat sat on the mat.",
			"generalComment": "Great listening!",
			"improvedVocabulary": [],
			"feedbackItems": [{"original":"mat","correction":"mat.","explanation":"End with a full stop.","type":"style"}]
		}`)},
	)
	mock.AddSpeech(llm.MockSpeech{Audio: []byte{0, 0, 1, 0}})

	m := NewMachine(
		exercise.New(mock, exercise.DefaultConfig()),
		assessment.New(mock, assessment.DefaultConfig()),
	)

	m.ChooseLevel(exercise.Beginner)
	s, err := m.ChooseMode(context.Background(), exercise.Dictation)
	if err != nil {
		t.Fatalf("choose mode: %v", err)
	}
	if !s.Exercise.HasAudio() || s.Exercise.HiddenText != "The cat sat on the mat." {
		t.Fatalf("unexpected exercise: %+v", s.Exercise)
	}

	s, err = m.SubmitText(context.Background(), "the cat sat on the mat")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Result.Score != 100 || len(s.Result.FeedbackItems) != 0 {
		t.Errorf("result = %+v, want score 100 with no items", s.Result)
	}
}

// Scenario: sentence challenge with open rubric feedback.
func TestMachine_SentenceChallengeScenario(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{
			"title": "Sentence Challenge",
			"description": "Write one sentence using the word 'however'.",
			"hint": "Contrast two things you like.",
			"targetFocus": "use 'however'"
		}`)},
		llm.MockResponse{Content: json.RawMessage(`{
			"score": 72,
			"correctedVersion": "I like tea; however, I prefer coffee in the morning.",
			"generalComment": "Good contrast.",
			"improvedVocabulary": ["relish"],
			"feedbackItems": [{"original":"tea however I","correction":"tea; however, I","explanation":"Punctuate 'however' between clauses.","type":"grammar"}]
		}`)},
	)
	m := NewMachine(
		exercise.New(mock, exercise.DefaultConfig()),
		assessment.New(mock, assessment.DefaultConfig()),
	)

	m.ChooseLevel(exercise.Intermediate)
	if _, err := m.ChooseMode(context.Background(), exercise.SentenceChallenge); err != nil {
		t.Fatalf("choose mode: %v", err)
	}
	s, err := m.SubmitText(context.Background(), "I like tea however I prefer coffee in the morning.")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s.Result.Score != 72 || len(s.Result.FeedbackItems) < 1 {
		t.Errorf("result = %+v", s.Result)
	}
	if s.Result.FeedbackItems[0].Type != assessment.TypeGrammar {
		t.Errorf("item type = %q", s.Result.FeedbackItems[0].Type)
	}
}

func TestMachine_CancelledGenerationReturnsToModeMenu(t *testing.T) {
	gen := &stubGenerator{ex: testExercise()}
	m := NewMachine(gen, &stubEvaluator{})
	if _, err := m.ChooseLevel(exercise.Beginner); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := m.ChooseMode(ctx, exercise.Grammar)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if s.State != SelectingMode || s.Exercise != nil || s.Mode != 0 {
		t.Errorf("session = %+v", s)
	}
	if s.Err != MsgGenerateFailed {
		t.Errorf("Err = %q, want %q", s.Err, MsgGenerateFailed)
	}
	if s.Level != exercise.Beginner {
		t.Errorf("level should be kept, got %v", s.Level)
	}
}
