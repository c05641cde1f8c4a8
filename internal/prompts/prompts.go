// Package prompts holds the names and descriptions of every tool the server
// advertises to MCP clients.
package prompts

// ToolPrompts maps each tool name to its description.
type ToolPrompts map[string]string

// Default returns the built-in descriptions.
func Default() ToolPrompts {
	return ToolPrompts{
		CreateTodoToolName:           CreateTodoToolDescription,
		GetAllTodosToolName:          GetAllTodosToolDescription,
		GetTodoByIDToolName:          GetTodoByIDToolDescription,
		UpdateTodoToolName:           UpdateTodoToolDescription,
		ToggleTodoCompletionToolName: ToggleTodoCompletionToolDescription,
		DeleteTodoToolName:           DeleteTodoToolDescription,
	}
}

// Describe returns the description for name, or an empty string.
func (p ToolPrompts) Describe(name string) string {
	return p[name]
}
