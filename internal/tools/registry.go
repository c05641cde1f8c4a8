// Package tools provides tool registry and unified registration framework for MCP tools.
package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/prompts"
)

// Registry manages the collection of available tools.
type Registry struct {
	mu           sync.RWMutex
	tools        map[string]*ServerTool
	descriptions prompts.ToolPrompts
}

// NewRegistry creates an empty tool registry that expects the built-in
// descriptions for the tools it knows.
func NewRegistry() *Registry {
	return NewRegistryWithPrompts(prompts.Default())
}

// NewRegistryWithPrompts creates an empty tool registry checked against p.
func NewRegistryWithPrompts(p prompts.ToolPrompts) *Registry {
	return &Registry{
		tools:        make(map[string]*ServerTool),
		descriptions: p,
	}
}

// Register adds tools to the registry, rejecting empty and duplicate names.
func (r *Registry) Register(tools ...*ServerTool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		if tool == nil || tool.Tool == nil {
			return fmt.Errorf("tool definition cannot be nil")
		}

		name := tool.Tool.Name
		if name == "" {
			return fmt.Errorf("tool name cannot be empty")
		}

		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("tool %s is already registered", name)
		}

		r.tools[name] = tool
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*ServerTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Validate checks if all registered tools are properly configured.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, tool := range r.tools {
		if tool.Tool.Name != name {
			return fmt.Errorf("tool name mismatch: registered as %s but reports name %s", name, tool.Tool.Name)
		}

		if tool.Tool.Description == "" {
			return fmt.Errorf("tool %s has empty description", name)
		}

		if want := r.descriptions.Describe(name); want != "" && want != tool.Tool.Description {
			return fmt.Errorf("tool %s description does not match its prompt", name)
		}

		if tool.RegisterFunc == nil {
			return fmt.Errorf("tool %s has nil register function", name)
		}
	}

	return nil
}

// Install registers every tool on server in name order.
func (r *Registry) Install(server *mcp.Server) {
	for _, name := range r.List() {
		tool, _ := r.Get(name)
		tool.RegisterFunc(server)
	}
}

// ToolGroupFactory creates a group of ServerTools given a context.
type ToolGroupFactory func(*Context) []*ServerTool

// ToolBuilder provides a fluent interface for building tools with type safety.
type ToolBuilder[T any] struct {
	name        string
	description string
	handler     func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)
}

// NewToolBuilder creates a new tool builder. The input schema is inferred
// from T when the tool is added to a server.
func NewToolBuilder[T any](name, description string) *ToolBuilder[T] {
	return &ToolBuilder[T]{
		name:        name,
		description: description,
	}
}

// WithHandler sets the tool handler function with proper MCP SDK typing.
func (b *ToolBuilder[T]) WithHandler(handler func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error)) *ToolBuilder[T] {
	b.handler = handler
	return b
}

// Build creates the ServerTool with all configured options.
func (b *ToolBuilder[T]) Build() *ServerTool {
	if b.handler == nil {
		panic(fmt.Sprintf("handler not set for tool %s", b.name))
	}

	tool := &mcp.Tool{
		Name:        b.name,
		Description: b.description,
	}
	handler := b.handler

	return &ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}
