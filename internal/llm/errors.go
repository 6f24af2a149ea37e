package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is a 429 from the provider. The retry decorator honours
// RetryAfter when the provider sent one.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse wraps a structured response that failed to parse or
// to match its schema. Content holds the raw reply for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures, 5xx replies, and a
// provider that was never configured. Exercise generation falls back on it;
// assessment reports it to the learner as a generic failure.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is a structured reply cut off at the token budget.
// It is not retried: the same budget would truncate again.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
	Limit   int
}

func (e *ErrMaxTokensExceeded) Error() string {
	if e.Limit > 0 {
		return fmt.Sprintf("LLM response truncated at %d tokens", e.Limit)
	}
	return "LLM response truncated: max tokens exceeded"
}

var (
	// ErrSpeechUnsupported comes from text-only providers asked for
	// dictation audio.
	ErrSpeechUnsupported = errors.New("speech synthesis not supported by this provider")

	// ErrNoAudio is a speech reply without a usable payload.
	ErrNoAudio = errors.New("no audio in speech response")
)
