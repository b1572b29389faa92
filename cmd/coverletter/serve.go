package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/cover-letter-dashboard/internal/config"
	"github.com/jonathan/cover-letter-dashboard/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Long:  `Start an HTTP server that renders the dashboard and exposes its data as JSON.`,
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	cmd.Flags().String("log-format", config.DefaultLogFormat, "Log format (text, json)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger(os.Stderr)

	data, err := loadData(cfg)
	if err != nil {
		return err
	}
	if cfg.DataFile != "" {
		logger.Info("loaded dashboard data", "path", cfg.DataFile, "stats", len(data.Stats), "history", len(data.History))
	}

	srv, err := server.New(server.Config{
		Port:            cfg.Port,
		Data:            data,
		Logger:          logger,
		RateLimit:       cfg.RateLimiterConfig(),
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Serve(ctx)
}
