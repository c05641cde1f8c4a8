package devapi

import (
	"sync/atomic"
	"time"

	"github.com/d-kuro/todo-mcp/internal/collections"
	"github.com/d-kuro/todo-mcp/internal/schema"
)

// Store keeps todos in memory. IDs start at 1 and are never reused.
type Store struct {
	todos  *collections.SyncMap[int64, schema.Todo]
	nextID atomic.Int64
	now    func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		todos: collections.NewSyncMap[int64, schema.Todo](),
		now:   time.Now,
	}
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// List returns every todo ordered by ID.
func (s *Store) List() []schema.Todo {
	return collections.SortedBy(s.todos.Values(), func(t schema.Todo) int64 { return t.ID })
}

// Get returns the todo with id.
func (s *Store) Get(id int64) (schema.Todo, bool) {
	return s.todos.Get(id)
}

// Create stores a new todo built from in.
func (s *Store) Create(in schema.CreateTodoInput) schema.Todo {
	ts := s.timestamp()
	todo := schema.Todo{
		ID:          s.nextID.Add(1),
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if in.IsCompleted != nil {
		todo.IsCompleted = *in.IsCompleted
	}
	s.todos.Set(todo.ID, todo)
	return todo
}

// Update applies the fields present in patch.
func (s *Store) Update(id int64, patch schema.TodoPatch) (schema.Todo, bool) {
	ts := s.timestamp()
	return s.todos.Update(id, func(todo schema.Todo) schema.Todo {
		if patch.Title != nil {
			todo.Title = *patch.Title
		}
		if patch.Description != nil {
			todo.Description = patch.Description
		}
		if patch.IsCompleted != nil {
			todo.IsCompleted = *patch.IsCompleted
		}
		todo.UpdatedAt = ts
		return todo
	})
}

// Toggle flips IsCompleted.
func (s *Store) Toggle(id int64) (schema.Todo, bool) {
	ts := s.timestamp()
	return s.todos.Update(id, func(todo schema.Todo) schema.Todo {
		todo.IsCompleted = !todo.IsCompleted
		todo.UpdatedAt = ts
		return todo
	})
}

// Delete removes the todo with id.
func (s *Store) Delete(id int64) bool {
	return s.todos.Delete(id)
}
