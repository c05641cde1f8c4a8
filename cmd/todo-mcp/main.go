// Package main implements the todo MCP server executable.
// It exposes a Todo REST API as MCP tools over stdio or streamable HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/d-kuro/todo-mcp/internal/cmd"
	"github.com/d-kuro/todo-mcp/internal/config"
	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/metrics"
	"github.com/d-kuro/todo-mcp/internal/security"
	"github.com/d-kuro/todo-mcp/internal/server"
	"github.com/d-kuro/todo-mcp/internal/todoapi"
	"github.com/d-kuro/todo-mcp/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "todo-mcp",
	Short: "Todo MCP server",
	Long: `todo-mcp provides a Model Context Protocol server that exposes a Todo
REST API as MCP tools. API_KEY must be set; API_BASE_URL defaults to
http://localhost:3000.`,
	RunE:          runServer,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// serverFlags holds the flags for the server command
type serverFlags struct {
	configFile string
	baseURL    string
	httpAddr   string
	logLevel   string
}

var serverOpts = &serverFlags{}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")

	rootCmd.Flags().StringVar(&serverOpts.configFile, "config", "", "Path to a YAML config file")
	rootCmd.Flags().StringVar(&serverOpts.baseURL, "base-url", "", "Todo API base URL (overrides API_BASE_URL)")
	rootCmd.Flags().StringVar(&serverOpts.httpAddr, "http", "", "Serve MCP over streamable HTTP on this address (e.g., :8080)")
	rootCmd.Flags().StringVar(&serverOpts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(newMockAPICmd())
}

// runServer starts the MCP server
func runServer(cmd *cobra.Command, args []string) error {
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		fmt.Println(version.GetVersion().String())
		return nil
	}

	cfg, err := config.Load(config.Options{
		ConfigFile: serverOpts.configFile,
		BaseURL:    serverOpts.baseURL,
		HTTPAddr:   serverOpts.httpAddr,
		LogLevel:   serverOpts.logLevel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "todo-mcp: %v\n", err)
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	m := metrics.New()

	client := todoapi.NewFromConfig(cfg, todoapi.WithObserver(m))

	srv, err := server.New(&server.Options{
		API:     client,
		Logger:  logger,
		Metrics: m,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server", slog.Any("error", err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info("Todo MCP server starting",
		slog.String("version", version.GetVersion().Version),
		slog.String("api", cfg.BaseURL),
		slog.String("api_key", security.Redact(cfg.APIKey)),
		slog.Int("tools_available", srv.GetRegistry().Count()))

	serverDone := make(chan error, 1)
	go func() {
		if cfg.HTTPAddr != "" {
			serverDone <- srv.ServeHTTP(ctx, cfg.HTTPAddr)
			return
		}
		serverDone <- srv.Serve(ctx, mcp.NewStdioTransport())
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", slog.Any("error", err))
	}

	logger.Info("Todo MCP server stopped")
	return nil
}
