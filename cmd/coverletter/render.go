package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/a-h/templ"
	"github.com/jonathan/cover-letter-dashboard/internal/views"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [dashboard|generate]",
		Short: "Render a page to HTML",
		Long: `Render a dashboard page to standalone HTML without starting the server.

Pages:
  dashboard  getting started, stats and history (default)
  generate   the generate cover letter form`,
		Example: `  # Print the dashboard
  coverletter render

  # Save the form page
  coverletter render generate -o generate.html`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dashboard", "generate"},
		RunE:      runRender,
	}

	cmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	page := "dashboard"
	if len(args) == 1 {
		page = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var title string
	var body templ.Component
	switch page {
	case "dashboard":
		data, err := loadData(cfg)
		if err != nil {
			return err
		}
		title, body = "Dashboard", views.DashboardHome(data)
	case "generate":
		title, body = "Generate Cover Letter", views.GenerateLetterForm(views.FormState{})
	default:
		return fmt.Errorf("unknown page %q (want dashboard or generate)", page)
	}

	var buf bytes.Buffer
	if err := views.Page(title, body).Render(cmd.Context(), &buf); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		_, err := buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := writeOutput(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeOutput writes data to path, reporting close errors as well as write errors.
func writeOutput(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = f.Write(data)
	return err
}
