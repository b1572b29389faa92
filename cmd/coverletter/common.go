package main

import (
	"fmt"

	"github.com/jonathan/cover-letter-dashboard/internal/config"
	"github.com/jonathan/cover-letter-dashboard/internal/dashboard"
	"github.com/spf13/cobra"
)

// loadConfig loads configuration with the command's explicitly set flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadData returns the configured data file, or the built-in data when none is set.
func loadData(cfg *config.Config) (*dashboard.Data, error) {
	if cfg.DataFile == "" {
		return dashboard.Load()
	}
	return dashboard.LoadFile(cfg.DataFile)
}
