package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/linguaflow/internal/server"
	"github.com/abhisek/linguaflow/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

		st, settings, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			settings.ServerAddr = addr
		}

		gen, eval := newServices(newProvider(cmd.Context(), settings, st.EventRepo()), settings)
		reg := server.NewRegistry(func() *session.Machine {
			return session.NewMachine(gen, eval)
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		server.StartTTLWorker(ctx, reg, settings.SessionTTL, min(settings.SessionTTL, time.Minute))
		return server.Serve(ctx, settings.ServerAddr, server.NewRouter(server.NewHandler(reg)))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LINGUAFLOW_ADDR, default :8080)")
}
