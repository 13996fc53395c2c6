package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/config"
	"github.com/bookfather/admin/internal/screen"
	"github.com/bookfather/admin/internal/tui"
	"github.com/bookfather/admin/internal/validation"
)

func newTUICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive admin",
		Long: `Starts the full-screen admin with a dashboard and one tab each for
books, categories and banners.

Logs go to --log-file (or BOOKFATHER_LOG_FILE) so they do not draw over the
interface; without one they are discarded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := o.api()
			if err != nil {
				return err
			}

			logger, closeLog, err := tuiLogger(o.cfg)
			if err != nil {
				return err
			}
			defer closeLog()
			slog.SetDefault(logger)

			app := tui.New(cmd.Context(), tui.Params{
				API:       api,
				History:   screen.NewHistory(screen.DashboardRoute),
				Validator: validation.New(),
				Logger:    logger,
			})

			if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("failed to run interactive admin: %w", err)
			}
			return nil
		},
	}
}

func tuiLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
