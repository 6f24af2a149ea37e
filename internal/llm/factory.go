package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/linguaflow/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	var p Provider = base
	if eventRepo != nil {
		p = WithLogging(p, eventRepo)
	}
	return WithRetry(p, cfg.Retry), nil
}

// unavailableProvider answers every call with ErrProviderUnavailable.
// It stands in when no credentials are configured so the rest of the
// application keeps its normal failure paths.
type unavailableProvider struct {
	cause error
}

// NewUnavailableProvider returns a Provider that always fails with cause.
func NewUnavailableProvider(cause error) Provider {
	return &unavailableProvider{cause: cause}
}

func (u *unavailableProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: u.cause}
}

func (u *unavailableProvider) Synthesize(context.Context, SpeechRequest) (*SpeechResponse, error) {
	return nil, &ErrProviderUnavailable{Err: u.cause}
}

func (u *unavailableProvider) ModelID() string {
	return "unavailable"
}
