// Package server implements the MCP server for the todo tools.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/collections"
	"github.com/d-kuro/todo-mcp/internal/logging"
	"github.com/d-kuro/todo-mcp/internal/metrics"
	"github.com/d-kuro/todo-mcp/internal/tools"
	"github.com/d-kuro/todo-mcp/internal/tools/todo"
	"github.com/d-kuro/todo-mcp/pkg/version"
)

// loggerAdapter wraps logging.Logger to implement tools.Logger interface.
// This avoids circular dependency between logging and tools packages.
type loggerAdapter struct {
	*logging.Logger
}

// WithTool implements tools.Logger interface.
func (a *loggerAdapter) WithTool(toolName string) tools.Logger {
	return &loggerAdapter{Logger: a.Logger.WithTool(toolName)}
}

// WithSession implements tools.Logger interface.
func (a *loggerAdapter) WithSession(sessionID string) tools.Logger {
	return &loggerAdapter{Logger: a.Logger.WithSession(sessionID)}
}

// Server represents the todo MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
	metrics   *metrics.Metrics
}

// Options configures the server instance. API is required.
type Options struct {
	API     tools.TodoAPI
	Logger  *logging.Logger
	Metrics *metrics.Metrics
	// ToolGroups defaults to the todo tools.
	ToolGroups []tools.ToolGroupFactory
}

// New creates a new todo MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("todo API client is required")
	}

	if opts.Logger == nil {
		opts.Logger = logging.NewLogger("info")
	}

	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	if len(opts.ToolGroups) == 0 {
		opts.ToolGroups = []tools.ToolGroupFactory{todo.CreateTodoTools}
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "todo-mcp",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}

	toolCtx := &tools.Context{
		Logger:  &loggerAdapter{Logger: opts.Logger},
		API:     opts.API,
		Metrics: opts.Metrics,
	}

	if err := server.registerTools(toolCtx, opts.ToolGroups); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return server, nil
}

// Start validates the registry before any transport is served.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting todo MCP server",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools", s.registry.Count()),
	)

	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	return nil
}

// Stop stops the MCP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping todo MCP server")

	select {
	case <-ctx.Done():
		s.logger.Warn("Server stop timed out")
		return ctx.Err()
	default:
		s.logger.Info("Server stopped successfully")
		return nil
	}
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers every tool group with the registry and the MCP server.
func (s *Server) registerTools(toolCtx *tools.Context, groups []tools.ToolGroupFactory) error {
	s.logger.Debug("Registering tools with MCP server")

	created := make([][]*tools.ServerTool, 0, len(groups))
	for _, group := range groups {
		created = append(created, group(toolCtx))
	}

	if err := s.registry.Register(collections.Concat(created...)...); err != nil {
		return err
	}

	s.registry.Install(s.mcpServer)

	s.logger.Info("Successfully registered tools",
		slog.Int("count", s.registry.Count()),
		slog.Any("tools", s.registry.List()),
	)

	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		_ = session.Close()
		return ctx.Err()
	}
}
