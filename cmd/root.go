package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaflow/internal/assessment"
	"github.com/abhisek/linguaflow/internal/config"
	"github.com/abhisek/linguaflow/internal/exercise"
	"github.com/abhisek/linguaflow/internal/llm"
	"github.com/abhisek/linguaflow/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "linguaflow",
	Short: "AI English writing tutor",
	Long:  "LinguaFlow is a terminal app that generates English writing and listening exercises and grades your answers with an LLM.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUAFLOW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to TOML config file (default $XDG_CONFIG_HOME/linguaflow/config.toml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings resolves .env, the config file, the environment, and the
// persistent flags, in that order.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Settings{}, err
	}

	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	s, err := config.Load(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("load config: %w", err)
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		s.DBPath = p
	}
	return s, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(s config.Settings) (string, error) {
	if s.DBPath != "" {
		return s.DBPath, store.EnsureDir(s.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads settings and opens the event store.
func openStore(cmd *cobra.Command) (*store.Store, config.Settings, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, s, err
	}
	dbPath, err := resolveDBPath(s)
	if err != nil {
		return nil, s, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, s, fmt.Errorf("open store: %w", err)
	}
	return st, s, nil
}

// newProvider builds the configured provider. Without credentials it
// returns a provider that fails every call, so generation falls back and
// assessment reports its generic error.
func newProvider(ctx context.Context, s config.Settings, events store.EventRepo) llm.Provider {
	if !s.HasCredentials {
		err := s.LLM.Validate()
		slog.Warn("LLM provider not configured", "error", err)
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Exercises will use the built-in fallback and feedback will be unavailable.")
		return llm.NewUnavailableProvider(err)
	}

	p, err := llm.NewProvider(ctx, s.LLM, events)
	if err != nil {
		slog.Error("LLM provider init failed", "provider", s.LLM.Provider, "error", err)
		fmt.Fprintln(os.Stderr, "LLM provider init failed:", err)
		return llm.NewUnavailableProvider(err)
	}
	slog.Info("LLM provider ready", "provider", s.LLM.Provider, "model", p.ModelID())
	return p
}

// newServices wires the exercise generator and evaluator to p.
func newServices(p llm.Provider, s config.Settings) (*exercise.LLMGenerator, *assessment.LLMEvaluator) {
	cfg := exercise.DefaultConfig()
	cfg.Voice = s.Voice
	return exercise.New(p, cfg), assessment.New(p, assessment.DefaultConfig())
}
