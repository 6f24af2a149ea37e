package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaflow/internal/app"
	"github.com/abhisek/linguaflow/internal/audio"
	"github.com/abhisek/linguaflow/internal/config"
	"github.com/abhisek/linguaflow/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	closeLog, err := setupFileLogger(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	st, settings, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	gen, eval := newServices(newProvider(ctx, settings, eventRepo), settings)

	deps := app.Deps{
		Generator: gen,
		Evaluator: eval,
		Events:    eventRepo,
	}

	player, err := audio.NewPlayer(settings.PlayerCommand)
	if err != nil {
		slog.Warn("audio playback unavailable", "error", err)
	} else {
		slog.Info("audio player", "command", player.Command())
		deps.Player = player
	}

	return app.Run(deps)
}

// setupFileLogger routes slog to a file so log lines do not corrupt the
// terminal UI.
func setupFileLogger(path string) (func() error, error) {
	if err := store.EnsureDir(path); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if os.Getenv("LINGUAFLOW_DEBUG") != "" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	return f.Close, nil
}
