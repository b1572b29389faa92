// Package main provides the entry point for the cover letter dashboard server and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "coverletter",
		Short:         "Cover Letter Generator dashboard",
		Long:          "Serves the cover letter dashboard and renders its pages and data from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (default ./coverletter.yaml if present)")
	rootCmd.PersistentFlags().String("data-file", "", "JSON file replacing the built-in dashboard data")

	rootCmd.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newDataCmd(),
	)
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
