// Package schema defines the Todo entity and the argument shapes of every
// todo tool, together with the rules that decide whether a call may reach
// the network.
package schema

// Todo is a task item as returned by the remote Todo API.
type Todo struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	IsCompleted bool    `json:"isCompleted"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateTodoInput is the argument of create_todo and also the POST body.
// Optional fields left nil are omitted from the body.
type CreateTodoInput struct {
	Title       string  `json:"title" jsonschema:"the title of the todo (required and not empty)"`
	Description *string `json:"description,omitempty" jsonschema:"an optional longer description"`
	IsCompleted *bool   `json:"isCompleted,omitempty" jsonschema:"whether the todo starts completed"`
}

// TodoIDInput is the argument of the tools that address a single todo.
type TodoIDInput struct {
	ID int64 `json:"id" jsonschema:"the positive integer ID of the todo"`
}

// UpdateTodoInput is the argument of update_todo.
type UpdateTodoInput struct {
	ID          int64   `json:"id" jsonschema:"the positive integer ID of the todo to update"`
	Title       *string `json:"title,omitempty" jsonschema:"a new title (not empty when given)"`
	Description *string `json:"description,omitempty" jsonschema:"a new description"`
	IsCompleted *bool   `json:"isCompleted,omitempty" jsonschema:"the new completion state"`
}

// TodoPatch is the PATCH body of update_todo. Only fields the caller
// supplied are serialized.
type TodoPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"isCompleted,omitempty"`
}

// Patch returns the body fields of the update without the ID.
func (in UpdateTodoInput) Patch() TodoPatch {
	return TodoPatch{
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
	}
}

// Fields lists the JSON names of the fields present in the patch.
func (p TodoPatch) Fields() []string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.IsCompleted != nil {
		fields = append(fields, "isCompleted")
	}
	return fields
}

// EmptyInput is the argument of get_all_todos.
type EmptyInput struct{}
