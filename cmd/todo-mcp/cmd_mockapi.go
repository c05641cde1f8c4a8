package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/devapi"
	"github.com/d-kuro/todo-mcp/internal/logging"
)

func newMockAPICmd() *cobra.Command {
	var (
		addr   string
		apiKey string
	)

	c := &cobra.Command{
		Use:   "mock-api",
		Short: "Run an in-memory Todo REST API for local development",
		Long: `Run an in-memory implementation of the Todo REST API that todo-mcp talks to.
Requests must carry the x-api-key header matching --api-key (or API_KEY).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if apiKey == "" {
				apiKey = os.Getenv(config.EnvAPIKey)
			}
			if apiKey == "" {
				return fmt.Errorf("--api-key or %s is required", config.EnvAPIKey)
			}

			logLevel := os.Getenv(config.EnvLogLevel)
			if logLevel == "" {
				logLevel = "info"
			}
			logger := logging.NewLogger(logLevel)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           devapi.New(apiKey, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- httpServer.ListenAndServe()
			}()
			logger.Info("Mock Todo API listening", slog.String("addr", addr))

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("Shutdown signal received")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	c.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	c.Flags().StringVar(&apiKey, "api-key", "", "API key clients must send (defaults to API_KEY)")
	return c
}
