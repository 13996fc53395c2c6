package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bookfather/admin/internal/handlers"
)

func newServeCmd(o *rootOptions) *cobra.Command {
	var port string
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start an in-memory catalog API for local development",
		Long: `Starts an in-memory implementation of the BookFather catalog API on the
specified port. Requests must carry the configured API key.

Point the admin at it with --base-url http://localhost:<port>.`,
		Example: `  # Start a seeded server on the default port 8888
  BOOKFATHER_API_KEY=dev bookfather serve --seed

  # Start an empty server on a custom port
  bookfather serve --api-key dev --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg.APIKey == "" {
				return errors.New("API key is required (BOOKFATHER_API_KEY or --api-key)")
			}

			handler := handlers.New(o.cfg.APIKey, o.cfg.KeyHeader)
			if seed {
				handler.SeedSample()
			}

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: handler.Routes(),
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Catalog API available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().BoolVar(&seed, "seed", false, "Fill the store with a small demo catalog")

	return cmd
}
