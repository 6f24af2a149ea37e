// Package config loads settings from a TOML file, .env, and the
// environment.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields
// distinguish "unset" from zero values.
type FileConfig struct {
	LLM      LLMFileConfig      `toml:"llm"`
	Exercise ExerciseFileConfig `toml:"exercise"`
	Audio    AudioFileConfig    `toml:"audio"`
	Server   ServerFileConfig   `toml:"server"`
	Store    StoreFileConfig    `toml:"store"`
}

// LLMFileConfig maps provider settings.
type LLMFileConfig struct {
	Provider    *string `toml:"provider"`
	Model       *string `toml:"model"`
	SpeechModel *string `toml:"speech-model"`
	BaseURL     *string `toml:"base-url"`
	MaxAttempts *int    `toml:"max-attempts"`
}

// ExerciseFileConfig maps exercise generation settings.
type ExerciseFileConfig struct {
	Voice *string `toml:"voice"`
}

// AudioFileConfig maps playback settings.
type AudioFileConfig struct {
	Player *string `toml:"player"`
}

// ServerFileConfig maps HTTP API settings.
type ServerFileConfig struct {
	Addr       *string   `toml:"addr"`
	SessionTTL *duration `toml:"session-ttl"`
}

// StoreFileConfig maps database settings.
type StoreFileConfig struct {
	Path *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
