package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/exemplo/appserver/internal/server"
	"github.com/exemplo/appserver/internal/version"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "appserver",
		Short:         "Landing page and health check HTTP server",
		Version:       version.Get().String(),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true

			closeLog, err := setupLogger(&cfg.Log)
			if err != nil {
				return err
			}
			defer closeLog()

			logConfig(cfg)

			srv, err := server.New(cfg, server.NewServices(nil))
			if err != nil {
				return err
			}

			defer slog.Info("Bye!")
			return srv.Start(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.SortFlags = false
	flags.StringP("config", "c", "", "Config file (yaml or json)")
	flags.StringP("bind", "b", server.DefaultHost, "Host to bind the server")
	flags.IntP("port", "p", server.DefaultPort, "Port to listen on")
	flags.String("cert", "", "Path to the TLS certificate file")
	flags.String("key", "", "Path to the TLS key file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func main() {
	slog.SetDefault(slog.New(newConsoleHandler(os.Stdout, slog.LevelInfo)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("appserver", "error", err)
		stop()
		os.Exit(1)
	}
}
