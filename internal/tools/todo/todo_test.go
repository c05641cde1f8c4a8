package todo

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/d-kuro/todo-mcp/internal/errors"
	"github.com/d-kuro/todo-mcp/internal/metrics"
	"github.com/d-kuro/todo-mcp/internal/prompts"
	"github.com/d-kuro/todo-mcp/internal/schema"
	"github.com/d-kuro/todo-mcp/internal/tools"
)

// mockLogger provides a mock implementation of the Logger interface for testing.
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)             {}
func (m *mockLogger) Info(msg string, args ...any)              {}
func (m *mockLogger) Warn(msg string, args ...any)              {}
func (m *mockLogger) Error(msg string, args ...any)             {}
func (m *mockLogger) WithTool(toolName string) tools.Logger     { return m }
func (m *mockLogger) WithSession(sessionID string) tools.Logger { return m }

// apiCall is one dispatcher invocation seen by mockAPI.
type apiCall struct {
	Op    string
	ID    int64
	Input schema.CreateTodoInput
	Patch schema.TodoPatch
}

// mockAPI records dispatcher calls and answers with a canned response.
type mockAPI struct {
	mu    sync.Mutex
	calls []apiCall
	raw   json.RawMessage
	err   error
}

func (m *mockAPI) record(c apiCall) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	return m.raw, m.err
}

func (m *mockAPI) CreateTodo(_ context.Context, in schema.CreateTodoInput) (json.RawMessage, error) {
	return m.record(apiCall{Op: "create", Input: in})
}

func (m *mockAPI) ListTodos(_ context.Context) (json.RawMessage, error) {
	return m.record(apiCall{Op: "list"})
}

func (m *mockAPI) GetTodo(_ context.Context, id int64) (json.RawMessage, error) {
	return m.record(apiCall{Op: "get", ID: id})
}

func (m *mockAPI) UpdateTodo(_ context.Context, id int64, patch schema.TodoPatch) (json.RawMessage, error) {
	return m.record(apiCall{Op: "update", ID: id, Patch: patch})
}

func (m *mockAPI) ToggleTodo(_ context.Context, id int64) (json.RawMessage, error) {
	return m.record(apiCall{Op: "toggle", ID: id})
}

func (m *mockAPI) DeleteTodo(_ context.Context, id int64) (json.RawMessage, error) {
	return m.record(apiCall{Op: "delete", ID: id})
}

func (m *mockAPI) Calls() []apiCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]apiCall(nil), m.calls...)
}

// mockRecorder counts tool outcomes.
type mockRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *mockRecorder) ObserveToolCall(tool, outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[tool+"/"+outcome]++
}

// connect serves the todo tools over in-memory transports and returns a
// client session.
func connect(t *testing.T, api tools.TodoAPI, recorder tools.Recorder) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	tc := &tools.Context{Logger: &mockLogger{}, API: api, Metrics: recorder}
	server := mcp.NewServer(&mcp.Implementation{Name: "todo-test", Version: "v0.0.0"}, nil)
	for _, tool := range CreateTodoTools(tc) {
		tool.RegisterFunc(server)
	}

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	if _, err := server.Connect(ctx, serverTransport); err != nil {
		t.Fatalf("server connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "todo-test-client", Version: "v0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s) error = %v", name, err)
	}
	return result
}

func resultText(result *mcp.CallToolResult) string {
	var sb strings.Builder
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

const todoJSON = `{"id":5,"title":"Buy milk","isCompleted":false,"createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}`

func TestCreateTodoTools(t *testing.T) {
	created := CreateTodoTools(&tools.Context{Logger: &mockLogger{}, API: &mockAPI{}})

	registry := tools.NewRegistry()
	if err := registry.Register(created...); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := []string{
		prompts.CreateTodoToolName,
		prompts.DeleteTodoToolName,
		prompts.GetAllTodosToolName,
		prompts.GetTodoByIDToolName,
		prompts.ToggleTodoCompletionToolName,
		prompts.UpdateTodoToolName,
	}
	got := registry.List()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("tools = %v, want %v", got, want)
	}
}

func TestToolsListedOverMCP(t *testing.T) {
	session := connect(t, &mockAPI{}, nil)

	res, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	if len(res.Tools) != 6 {
		t.Fatalf("expected 6 tools, got %d", len(res.Tools))
	}
	for _, tool := range res.Tools {
		if want := prompts.Default().Describe(tool.Name); tool.Description != want {
			t.Errorf("tool %s description = %q, want %q", tool.Name, tool.Description, want)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
}

func TestToolDispatch(t *testing.T) {
	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		raw      string
		wantCall apiCall
		wantText string
	}{
		{
			name:     "create with title only",
			tool:     prompts.CreateTodoToolName,
			args:     map[string]any{"title": "Buy milk"},
			raw:      todoJSON,
			wantCall: apiCall{Op: "create", Input: schema.CreateTodoInput{Title: "Buy milk"}},
		},
		{
			name:     "get all",
			tool:     prompts.GetAllTodosToolName,
			args:     map[string]any{},
			raw:      "[" + todoJSON + "]",
			wantCall: apiCall{Op: "list"},
		},
		{
			name:     "get by id",
			tool:     prompts.GetTodoByIDToolName,
			args:     map[string]any{"id": 5},
			raw:      todoJSON,
			wantCall: apiCall{Op: "get", ID: 5},
		},
		{
			name:     "toggle",
			tool:     prompts.ToggleTodoCompletionToolName,
			args:     map[string]any{"id": 7},
			raw:      todoJSON,
			wantCall: apiCall{Op: "toggle", ID: 7},
		},
		{
			name:     "delete with 204",
			tool:     prompts.DeleteTodoToolName,
			args:     map[string]any{"id": 9},
			raw:      "",
			wantCall: apiCall{Op: "delete", ID: 9},
			wantText: "Todo 9 deleted successfully",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			if tt.raw != "" {
				api.raw = json.RawMessage(tt.raw)
			}
			recorder := &mockRecorder{}
			session := connect(t, api, recorder)

			result := callTool(t, session, tt.tool, tt.args)
			if result.IsError {
				t.Fatalf("unexpected error result: %s", resultText(result))
			}

			calls := api.Calls()
			if len(calls) != 1 {
				t.Fatalf("expected 1 API call, got %d", len(calls))
			}
			got := calls[0]
			if got.Op != tt.wantCall.Op || got.ID != tt.wantCall.ID || got.Input.Title != tt.wantCall.Input.Title {
				t.Errorf("call = %+v, want %+v", got, tt.wantCall)
			}

			text := resultText(result)
			if tt.wantText != "" {
				if text != tt.wantText {
					t.Errorf("text = %q, want %q", text, tt.wantText)
				}
			} else if !json.Valid([]byte(text)) {
				t.Errorf("expected JSON text, got %q", text)
			}

			if recorder.outcomes[tt.tool+"/"+metrics.OutcomeSuccess] != 1 {
				t.Errorf("success not recorded: %v", recorder.outcomes)
			}
		})
	}
}

func TestUpdateSendsOnlyProvidedFields(t *testing.T) {
	api := &mockAPI{raw: json.RawMessage(todoJSON)}
	session := connect(t, api, nil)

	result := callTool(t, session, prompts.UpdateTodoToolName, map[string]any{"id": 3, "isCompleted": true})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(result))
	}

	calls := api.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 API call, got %d", len(calls))
	}
	if calls[0].ID != 3 {
		t.Errorf("id = %d, want 3", calls[0].ID)
	}

	body, err := json.Marshal(calls[0].Patch)
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"isCompleted":true}` {
		t.Errorf("patch body = %s, want {\"isCompleted\":true}", body)
	}
}

func TestValidationBlocksNetwork(t *testing.T) {
	tests := []struct {
		name      string
		tool      string
		args      map[string]any
		wantField string
	}{
		{"create with empty title", prompts.CreateTodoToolName, map[string]any{"title": ""}, "title"},
		{"create with blank title", prompts.CreateTodoToolName, map[string]any{"title": "  "}, "title"},
		{"get with zero id", prompts.GetTodoByIDToolName, map[string]any{"id": 0}, "id"},
		{"get with negative id", prompts.GetTodoByIDToolName, map[string]any{"id": -5}, "id"},
		{"update with empty title", prompts.UpdateTodoToolName, map[string]any{"id": 3, "title": ""}, "title"},
		{"toggle with zero id", prompts.ToggleTodoCompletionToolName, map[string]any{"id": 0}, "id"},
		{"delete with negative id", prompts.DeleteTodoToolName, map[string]any{"id": -9}, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{raw: json.RawMessage(todoJSON)}
			recorder := &mockRecorder{}
			session := connect(t, api, recorder)

			result := callTool(t, session, tt.tool, tt.args)
			if !result.IsError {
				t.Fatalf("expected error result, got %s", resultText(result))
			}
			if text := resultText(result); !strings.Contains(text, tt.wantField+":") {
				t.Errorf("error %q does not name field %q", text, tt.wantField)
			}
			if n := len(api.Calls()); n != 0 {
				t.Errorf("expected zero API calls, got %d", n)
			}
			if recorder.outcomes[tt.tool+"/"+metrics.OutcomeValidationError] != 1 {
				t.Errorf("validation outcome not recorded: %v", recorder.outcomes)
			}
		})
	}
}

func TestRemoteErrorSurfaced(t *testing.T) {
	body := `{"message":"Todo with ID 9 not found"}`
	api := &mockAPI{err: errors.Remote(404, body)}
	recorder := &mockRecorder{}
	session := connect(t, api, recorder)

	result := callTool(t, session, prompts.DeleteTodoToolName, map[string]any{"id": 9})
	if !result.IsError {
		t.Fatal("expected error result")
	}

	want := "Error: API request failed with status 404: " + body
	if text := resultText(result); text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
	if recorder.outcomes[prompts.DeleteTodoToolName+"/"+metrics.OutcomeRemoteError] != 1 {
		t.Errorf("remote outcome not recorded: %v", recorder.outcomes)
	}
}

func TestTransportErrorSurfaced(t *testing.T) {
	api := &mockAPI{err: errors.Transport("GET", "/todos", context.DeadlineExceeded)}
	recorder := &mockRecorder{}
	session := connect(t, api, recorder)

	result := callTool(t, session, prompts.GetAllTodosToolName, map[string]any{})
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if !strings.Contains(resultText(result), "GET /todos") {
		t.Errorf("unexpected text %q", resultText(result))
	}
	if recorder.outcomes[prompts.GetAllTodosToolName+"/"+metrics.OutcomeTransportError] != 1 {
		t.Errorf("transport outcome not recorded: %v", recorder.outcomes)
	}
}

func TestGetAllTodosEmptyBody(t *testing.T) {
	session := connect(t, &mockAPI{}, nil)

	result := callTool(t, session, prompts.GetAllTodosToolName, map[string]any{})
	if result.IsError {
		t.Fatalf("unexpected error: %s", resultText(result))
	}
	if text := resultText(result); text != "[]" {
		t.Errorf("text = %q, want []", text)
	}
}

func TestClassify(t *testing.T) {
	if got := classify(errors.Remote(500, "")); got != metrics.OutcomeRemoteError {
		t.Errorf("classify(remote) = %s", got)
	}
	if got := classify(errors.New("dial tcp: refused")); got != metrics.OutcomeTransportError {
		t.Errorf("classify(other) = %s", got)
	}
}
