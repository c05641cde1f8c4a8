package schema

import (
	"strings"

	"github.com/d-kuro/todo-mcp/internal/errors"
)

// FieldError is a single rejected argument.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every rejected argument of one call.
type FieldErrors []FieldError

// Error implements error.
func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports ErrValidation as the kind of every FieldErrors.
func (fe FieldErrors) Is(target error) bool {
	return target == errors.ErrValidation
}

// Fields returns the names of the rejected fields in order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for _, e := range fe {
		names = append(names, e.Field)
	}
	return names
}

// add appends an error for field.
func (fe *FieldErrors) add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// err returns nil for an empty list so callers can compare with nil.
func (fe FieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Validator is implemented by every tool input.
type Validator interface {
	Validate() error
}

// Validate checks create_todo arguments.
func (in CreateTodoInput) Validate() error {
	var errs FieldErrors
	checkTitle(&errs, in.Title)
	return errs.err()
}

// Validate checks the id argument.
func (in TodoIDInput) Validate() error {
	var errs FieldErrors
	checkID(&errs, in.ID)
	return errs.err()
}

// Validate checks update_todo arguments. A present title must not be empty.
func (in UpdateTodoInput) Validate() error {
	var errs FieldErrors
	checkID(&errs, in.ID)
	if in.Title != nil {
		checkTitle(&errs, *in.Title)
	}
	return errs.err()
}

// Validate always succeeds; get_all_todos takes no arguments.
func (EmptyInput) Validate() error {
	return nil
}

func checkID(errs *FieldErrors, id int64) {
	if id <= 0 {
		errs.add("id", "must be a positive integer")
	}
}

func checkTitle(errs *FieldErrors, title string) {
	if strings.TrimSpace(title) == "" {
		errs.add("title", "must not be empty")
	}
}
