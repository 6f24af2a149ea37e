package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/linguaflow/internal/llm"
)

// Settings is the fully resolved configuration. Precedence, lowest first:
// built-in defaults, TOML file, environment (including .env). Command-line
// flags are applied on top by the caller.
type Settings struct {
	LLM llm.Config

	// Voice is requested for dictation audio.
	Voice string

	// PlayerCommand overrides audio player autodetection.
	PlayerCommand string

	ServerAddr string
	SessionTTL time.Duration

	// DBPath is empty when the store's default location should be used.
	DBPath string

	// HasCredentials is false when no provider key was found anywhere.
	HasCredentials bool
}

// Defaults returns built-in settings.
func Defaults() Settings {
	return Settings{
		LLM:        llm.DefaultConfig(),
		Voice:      "Fenrir",
		ServerAddr: ":8080",
		SessionTTL: 30 * time.Minute,
	}
}

// LoadDotEnv loads KEY=value pairs from each path into the environment.
// Variables already set are kept. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Resolve merges defaults, the file, and the environment.
func Resolve(file FileConfig) (Settings, error) {
	s := Defaults()
	applyFile(&s, file)

	explicit := file.LLM.Provider != nil || os.Getenv("LINGUAFLOW_LLM_PROVIDER") != ""
	if explicit {
		fillStandardKeys(&s.LLM)
	} else {
		s.LLM, _ = llm.DiscoverConfig(s.LLM)
	}
	s.LLM = llm.ConfigFromEnv(s.LLM)
	s.HasCredentials = s.LLM.Validate() == nil

	if v := os.Getenv("LINGUAFLOW_VOICE"); v != "" {
		s.Voice = v
	}
	if v := os.Getenv("LINGUAFLOW_PLAYER"); v != "" {
		s.PlayerCommand = v
	}
	if v := os.Getenv("LINGUAFLOW_ADDR"); v != "" {
		s.ServerAddr = v
	}
	if v := os.Getenv("LINGUAFLOW_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Settings{}, fmt.Errorf("LINGUAFLOW_SESSION_TTL: %w", err)
		}
		s.SessionTTL = d
	}
	if v := os.Getenv("LINGUAFLOW_DB"); v != "" {
		s.DBPath = v
	}

	if s.SessionTTL <= 0 {
		return Settings{}, fmt.Errorf("session TTL must be positive, got %s", s.SessionTTL)
	}
	return s, nil
}

// Load reads the config file at path and resolves it.
func Load(path string) (Settings, error) {
	file, err := LoadConfig(path)
	if err != nil {
		return Settings{}, err
	}
	return Resolve(file)
}

func applyFile(s *Settings, f FileConfig) {
	set := func(dst *string, v *string) {
		if v != nil && *v != "" {
			*dst = *v
		}
	}

	set(&s.LLM.Provider, f.LLM.Provider)
	switch s.LLM.Provider {
	case "gemini":
		set(&s.LLM.Gemini.Model, f.LLM.Model)
		set(&s.LLM.Gemini.SpeechModel, f.LLM.SpeechModel)
	case "openai":
		set(&s.LLM.OpenAI.Model, f.LLM.Model)
		set(&s.LLM.OpenAI.SpeechModel, f.LLM.SpeechModel)
		set(&s.LLM.OpenAI.BaseURL, f.LLM.BaseURL)
	case "anthropic":
		set(&s.LLM.Anthropic.Model, f.LLM.Model)
	case "openrouter":
		set(&s.LLM.OpenRouter.Model, f.LLM.Model)
		set(&s.LLM.OpenRouter.BaseURL, f.LLM.BaseURL)
	}
	if f.LLM.MaxAttempts != nil && *f.LLM.MaxAttempts > 0 {
		s.LLM.Retry.MaxAttempts = *f.LLM.MaxAttempts
	}

	set(&s.Voice, f.Exercise.Voice)
	set(&s.PlayerCommand, f.Audio.Player)
	set(&s.ServerAddr, f.Server.Addr)
	if f.Server.SessionTTL != nil {
		s.SessionTTL = time.Duration(*f.Server.SessionTTL)
	}
	set(&s.DBPath, f.Store.Path)
}

// fillStandardKeys reads the vendor's conventional key variable for an
// explicitly chosen provider.
func fillStandardKeys(c *llm.Config) {
	first := func(dst *string, keys ...string) {
		if *dst != "" {
			return
		}
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	first(&c.Gemini.APIKey, "GEMINI_API_KEY", "API_KEY")
	first(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	first(&c.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	first(&c.OpenRouter.APIKey, "OPENROUTER_API_KEY")
}

// duration decodes TOML strings like "30m".
type duration time.Duration

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}
