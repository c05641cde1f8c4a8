// Package todo provides registration for todo management tools.
package todo

import (
	"github.com/d-kuro/todo-mcp/internal/tools"
)

// CreateTodoTools creates all todo management tools using MCP SDK patterns.
func CreateTodoTools(ctx *tools.Context) []*tools.ServerTool {
	return []*tools.ServerTool{
		CreateCreateTodoTool(ctx),
		CreateGetAllTodosTool(ctx),
		CreateGetTodoByIDTool(ctx),
		CreateUpdateTodoTool(ctx),
		CreateToggleTodoCompletionTool(ctx),
		CreateDeleteTodoTool(ctx),
	}
}
