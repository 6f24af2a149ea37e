package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/abhisek/linguaflow/internal/audio"
	"github.com/abhisek/linguaflow/internal/llm"
)

// Generator produces exercises for a level and mode.
type Generator interface {
	// Generate never fails: any internal error yields Fallback().
	Generate(ctx context.Context, level Level, mode Mode) Exercise
}

// placeholderSpeech is synthesized when a dictation response has no
// hiddenText. The learner then hears a sentence unrelated to the
// instructions; see DESIGN.md.
const placeholderSpeech = "Hello"

// Fallback returns the static exercise used whenever generation fails.
func Fallback() Exercise {
	return Exercise{
		Title:       "Daily Journal",
		Description: "Write 3 sentences about what you did today.",
		Hint:        "Start with 'Today, I...'",
		TargetFocus: "Past Tense Verbs",
	}
}

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// exerciseOutput is the raw LLM response before validation.
type exerciseOutput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Hint          string `json:"hint"`
	TargetFocus   string `json:"targetFocus"`
	HiddenText    string `json:"hiddenText"`
	ClozeSentence string `json:"clozeSentence"`
}

// Generate produces an exercise, falling back to the daily journal prompt
// on any failure.
func (g *LLMGenerator) Generate(ctx context.Context, level Level, mode Mode) Exercise {
	ex, err := g.generate(ctx, level, mode)
	if err != nil {
		slog.Warn("exercise generation failed, using fallback",
			"level", level.Slug(), "mode", mode.Slug(), "error", err)
		return Fallback()
	}
	return ex
}

func (g *LLMGenerator) generate(ctx context.Context, level Level, mode Mode) (Exercise, error) {
	if !level.Valid() || !mode.Valid() {
		return Exercise{}, fmt.Errorf("invalid level %d or mode %d", level, mode)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(level, mode)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeExerciseGen), req)
	if err != nil {
		return Exercise{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw exerciseOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return Exercise{}, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	ex := Exercise{
		Title:         raw.Title,
		Description:   raw.Description,
		Hint:          raw.Hint,
		TargetFocus:   raw.TargetFocus,
		HiddenText:    raw.HiddenText,
		ClozeSentence: raw.ClozeSentence,
		Mode:          mode,
	}

	// Drop fields the model filled in for modes that don't use them.
	if mode != FillInBlanks {
		ex.ClozeSentence = ""
	}
	if mode != FillInBlanks && mode != Dictation {
		ex.HiddenText = ""
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(&ex, mode); verr != nil {
			return Exercise{}, verr
		}
	}

	if mode == Dictation {
		speech, err := g.synthesize(ctx, ex.HiddenText)
		if err != nil {
			return Exercise{}, err
		}
		ex.AudioData = speech
	}

	return ex, nil
}

func (g *LLMGenerator) synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		slog.Warn("dictation response has no hiddenText, synthesizing placeholder")
		text = placeholderSpeech
	}

	resp, err := g.provider.Synthesize(llm.WithPurpose(ctx, llm.PurposeDictationAudio), llm.SpeechRequest{
		Text:  text,
		Voice: g.config.Voice,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	if audio.Silent(resp.Audio) {
		return nil, &llm.ErrInvalidResponse{Err: llm.ErrNoAudio}
	}
	return resp.Audio, nil
}
