package assessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/llm"
)

// ErrEmptySubmission is returned when the submitted text is blank.
var ErrEmptySubmission = errors.New("submission is empty")

// Evaluator scores a learner's response to an exercise.
type Evaluator interface {
	// Assess returns the critique of text, or an error. Unlike exercise
	// generation there is no fallback: failures reach the caller.
	Assess(ctx context.Context, text string, ex exercise.Exercise, level exercise.Level) (*Result, error)
}

// Config controls the behavior of the LLMEvaluator.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.2,
	}
}

// LLMEvaluator implements Evaluator using the LLM provider.
type LLMEvaluator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMEvaluator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMEvaluator {
	return &LLMEvaluator{provider: provider, config: cfg}
}

func (e *LLMEvaluator) Assess(ctx context.Context, text string, ex exercise.Exercise, level exercise.Level) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySubmission
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(text, ex, level)},
		},
		Schema:      AssessmentSchema,
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	}

	resp, err := e.provider.Generate(llm.WithPurpose(ctx, llm.PurposeAssessment), req)
	if err != nil {
		return nil, fmt.Errorf("assessment request failed: %w", err)
	}

	var res Result
	if err := json.Unmarshal(resp.Content, &res); err != nil {
		return nil, fmt.Errorf("failed to parse assessment: %w", err)
	}

	if ex.ExactMatch() && Matches(text, ex.HiddenText) {
		reconcileExact(&res, ex.HiddenText)
	}
	if res.ImprovedVocabulary == nil {
		res.ImprovedVocabulary = []string{}
	}
	if res.FeedbackItems == nil {
		res.FeedbackItems = []FeedbackItem{}
	}

	return &res, nil
}

// reconcileExact overrides a model verdict that disagrees with a
// normalized exact match.
func reconcileExact(res *Result, reference string) {
	res.Score = 100
	res.FeedbackItems = []FeedbackItem{}
	res.CorrectedVersion = reference
}
