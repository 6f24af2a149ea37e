package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey      string
	Model       string // Default: "gpt-4o-mini"
	BaseURL     string // Optional. Override for OpenRouter or compatible APIs.
	SpeechModel string // Default: "tts-1"
	Voice       string // Default: "alloy"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey      string
	Model       string // Default: "gemini-flash"
	SpeechModel string // Default: "gemini-tts"
	Voice       string // Default: "Fenrir"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-4o-mini",
			SpeechModel: "tts-1",
			Voice:       "alloy",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-flash",
			SpeechModel: "gemini-tts",
			Voice:       "Fenrir",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv overlays LINGUAFLOW_* environment variables on base.
func ConfigFromEnv(base Config) Config {
	cfg := base

	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&cfg.Provider, "LINGUAFLOW_LLM_PROVIDER")

	setString(&cfg.Anthropic.APIKey, "LINGUAFLOW_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "LINGUAFLOW_ANTHROPIC_MODEL")

	setString(&cfg.OpenAI.APIKey, "LINGUAFLOW_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "LINGUAFLOW_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "LINGUAFLOW_OPENAI_BASE_URL")
	setString(&cfg.OpenAI.SpeechModel, "LINGUAFLOW_OPENAI_SPEECH_MODEL")
	setString(&cfg.OpenAI.Voice, "LINGUAFLOW_OPENAI_VOICE")

	setString(&cfg.Gemini.APIKey, "LINGUAFLOW_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "LINGUAFLOW_GEMINI_MODEL")
	setString(&cfg.Gemini.SpeechModel, "LINGUAFLOW_GEMINI_SPEECH_MODEL")
	setString(&cfg.Gemini.Voice, "LINGUAFLOW_GEMINI_VOICE")

	setString(&cfg.OpenRouter.APIKey, "LINGUAFLOW_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "LINGUAFLOW_OPENROUTER_MODEL")

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and fills in the first
// provider whose key is found. API_KEY is accepted as a Gemini key.
// Returns (base, false) if none found.
func DiscoverConfig(base Config) (Config, bool) {
	cfg := base

	for _, key := range []string{"GEMINI_API_KEY", "API_KEY"} {
		if k := os.Getenv(key); k != "" {
			cfg.Provider = "gemini"
			cfg.Gemini.APIKey = k
			return cfg, true
		}
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return base, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LINGUAFLOW_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LINGUAFLOW_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (or API_KEY) is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LINGUAFLOW_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
