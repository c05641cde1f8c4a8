// Package tools provides the tool registry and common types for MCP tools.
package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/schema"
)

// ServerTool pairs a tool definition with the function that registers its
// typed handler on an MCP server.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}

// Context contains common dependencies needed by tools.
type Context struct {
	Logger  Logger
	API     TodoAPI
	Metrics Recorder
}

// Logger defines the logging interface for tools.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithTool(toolName string) Logger
	WithSession(sessionID string) Logger
}

// TodoAPI is the request dispatcher the todo tools call.
// Every method performs exactly one HTTP request.
type TodoAPI interface {
	CreateTodo(ctx context.Context, in schema.CreateTodoInput) (json.RawMessage, error)
	ListTodos(ctx context.Context) (json.RawMessage, error)
	GetTodo(ctx context.Context, id int64) (json.RawMessage, error)
	UpdateTodo(ctx context.Context, id int64, patch schema.TodoPatch) (json.RawMessage, error)
	ToggleTodo(ctx context.Context, id int64) (json.RawMessage, error)
	DeleteTodo(ctx context.Context, id int64) (json.RawMessage, error)
}

// Recorder counts tool invocations by outcome.
type Recorder interface {
	ObserveToolCall(tool, outcome string)
}

// RecordToolCall forwards to ctx.Metrics when one is configured.
func (c *Context) RecordToolCall(tool, outcome string) {
	if c.Metrics != nil {
		c.Metrics.ObserveToolCall(tool, outcome)
	}
}
