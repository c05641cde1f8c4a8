package prompts

// Tool names exposed to MCP clients.
const (
	CreateTodoToolName           = "create_todo"
	GetAllTodosToolName          = "get_all_todos"
	GetTodoByIDToolName          = "get_todo_by_id"
	UpdateTodoToolName           = "update_todo"
	ToggleTodoCompletionToolName = "toggle_todo_completion"
	DeleteTodoToolName           = "delete_todo"
)

// CreateTodoToolDescription describes create_todo.
const CreateTodoToolDescription = `Create a new todo item.

Requires a non-empty "title". "description" and "isCompleted" are optional; omitted fields are left to the API defaults.
Returns the created todo as JSON, including its assigned "id" and timestamps.`

// GetAllTodosToolDescription describes get_all_todos.
const GetAllTodosToolDescription = `List every todo item.

Takes no arguments. Returns a JSON array of todos with id, title, description, isCompleted, createdAt and updatedAt.`

// GetTodoByIDToolDescription describes get_todo_by_id.
const GetTodoByIDToolDescription = `Fetch a single todo item by its ID.

"id" must be a positive integer. Returns the todo as JSON, or an error with the API status when it does not exist.`

// UpdateTodoToolDescription describes update_todo.
const UpdateTodoToolDescription = `Update fields of an existing todo item.

"id" must be a positive integer. Only the fields you pass ("title", "description", "isCompleted") are changed; a "title" must not be empty when given.
Returns the updated todo as JSON.`

// ToggleTodoCompletionToolDescription describes toggle_todo_completion.
const ToggleTodoCompletionToolDescription = `Flip the completion state of a todo item.

"id" must be a positive integer. A completed todo becomes open and an open todo becomes completed. Returns the updated todo as JSON.`

// DeleteTodoToolDescription describes delete_todo.
const DeleteTodoToolDescription = `Delete a todo item permanently.

"id" must be a positive integer. Returns a confirmation naming the deleted ID, or an error with the API status when it does not exist.`
