// Package todo provides the todo management tools. Each tool validates its
// arguments, then makes exactly one Todo API call through the dispatcher and
// renders the JSON it returns.
package todo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/metrics"
	"github.com/d-kuro/todo-mcp/internal/prompts"
	"github.com/d-kuro/todo-mcp/internal/schema"
	"github.com/d-kuro/todo-mcp/internal/tools"
)

var descriptions = prompts.Default()

// dispatchFunc performs the API call for validated arguments.
type dispatchFunc[T schema.Validator] func(ctx context.Context, args T) (*mcp.CallToolResultFor[any], error)

// newHandler wraps dispatch with validation, logging and metrics.
// Arguments that fail validation never reach dispatch.
func newHandler[T schema.Validator](tc *tools.Context, name string, dispatch dispatchFunc[T]) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error) {
	logger := tc.Logger.WithTool(name)

	return func(ctxReq context.Context, session *mcp.ServerSession, params *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error) {
		start := time.Now()
		args := params.Arguments

		if err := args.Validate(); err != nil {
			logger.Debug("Rejected tool arguments", "error", err)
			tc.RecordToolCall(name, metrics.OutcomeValidationError)
			return tools.ErrorResponse(err.Error()), nil
		}

		result, err := dispatch(ctxReq, args)
		if err != nil {
			outcome := classify(err)
			switch outcome {
			case metrics.OutcomeRemoteError:
				logger.Warn("Todo API returned an error", "status", errors.StatusCode(err), "error", err)
			default:
				logger.Error("Todo API request failed", "error", err)
			}
			tc.RecordToolCall(name, outcome)
			return tools.ErrorResponse(err.Error()), nil
		}

		logger.Debug("Tool call completed", "duration", time.Since(start))
		tc.RecordToolCall(name, metrics.OutcomeSuccess)
		return result, nil
	}
}

func classify(err error) string {
	if errors.Is(err, errors.ErrRemote) {
		return metrics.OutcomeRemoteError
	}
	return metrics.OutcomeTransportError
}

// render turns a remote JSON body into a tool result.
func render(raw json.RawMessage, err error) (*mcp.CallToolResultFor[any], error) {
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return tools.SuccessResponse("null"), nil
	}
	return tools.RawJSONResponse(raw), nil
}

// CreateCreateTodoTool creates the create_todo tool.
func CreateCreateTodoTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.CreateTodoToolName
	return tools.NewToolBuilder[schema.CreateTodoInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, args schema.CreateTodoInput) (*mcp.CallToolResultFor[any], error) {
			return render(ctx.API.CreateTodo(ctxReq, args))
		})).
		Build()
}

// CreateGetAllTodosTool creates the get_all_todos tool.
func CreateGetAllTodosTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.GetAllTodosToolName
	return tools.NewToolBuilder[schema.EmptyInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, _ schema.EmptyInput) (*mcp.CallToolResultFor[any], error) {
			raw, err := ctx.API.ListTodos(ctxReq)
			if err != nil {
				return nil, err
			}
			if raw == nil {
				return tools.JSONResponse([]schema.Todo{}), nil
			}
			return tools.RawJSONResponse(raw), nil
		})).
		Build()
}

// CreateGetTodoByIDTool creates the get_todo_by_id tool.
func CreateGetTodoByIDTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.GetTodoByIDToolName
	return tools.NewToolBuilder[schema.TodoIDInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, args schema.TodoIDInput) (*mcp.CallToolResultFor[any], error) {
			return render(ctx.API.GetTodo(ctxReq, args.ID))
		})).
		Build()
}

// CreateUpdateTodoTool creates the update_todo tool.
func CreateUpdateTodoTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.UpdateTodoToolName
	return tools.NewToolBuilder[schema.UpdateTodoInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, args schema.UpdateTodoInput) (*mcp.CallToolResultFor[any], error) {
			return render(ctx.API.UpdateTodo(ctxReq, args.ID, args.Patch()))
		})).
		Build()
}

// CreateToggleTodoCompletionTool creates the toggle_todo_completion tool.
func CreateToggleTodoCompletionTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.ToggleTodoCompletionToolName
	return tools.NewToolBuilder[schema.TodoIDInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, args schema.TodoIDInput) (*mcp.CallToolResultFor[any], error) {
			return render(ctx.API.ToggleTodo(ctxReq, args.ID))
		})).
		Build()
}

// CreateDeleteTodoTool creates the delete_todo tool.
func CreateDeleteTodoTool(ctx *tools.Context) *tools.ServerTool {
	name := prompts.DeleteTodoToolName
	return tools.NewToolBuilder[schema.TodoIDInput](name, descriptions.Describe(name)).
		WithHandler(newHandler(ctx, name, func(ctxReq context.Context, args schema.TodoIDInput) (*mcp.CallToolResultFor[any], error) {
			raw, err := ctx.API.DeleteTodo(ctxReq, args.ID)
			if err != nil {
				return nil, err
			}
			if raw == nil {
				return tools.SuccessResponsef("Todo %d deleted successfully", args.ID), nil
			}
			return tools.RawJSONResponse(raw), nil
		})).
		Build()
}
