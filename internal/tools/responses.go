// Package tools provides centralized response utilities for MCP tool handlers.
package tools

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ErrorResponse creates a standardized error response for MCP tools.
func ErrorResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + message}},
		IsError: true,
	}
}

// ErrorResponsef creates a standardized error response with formatted message.
func ErrorResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return ErrorResponse(fmt.Sprintf(format, args...))
}

// SuccessResponse creates a standardized success response with text content.
func SuccessResponse(message string) *mcp.CallToolResultFor[any] {
	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: false,
	}
}

// SuccessResponsef creates a standardized success response with formatted message.
func SuccessResponsef(format string, args ...any) *mcp.CallToolResultFor[any] {
	return SuccessResponse(fmt.Sprintf(format, args...))
}

// JSONResponse creates a response with JSON content.
func JSONResponse(data any) *mcp.CallToolResultFor[any] {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return ErrorResponsef("failed to marshal JSON: %v", err)
	}

	return SuccessResponse(string(jsonBytes))
}

// RawJSONResponse returns a remote JSON document unchanged apart from
// indentation.
func RawJSONResponse(raw json.RawMessage) *mcp.CallToolResultFor[any] {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return ErrorResponsef("failed to format JSON: %v", err)
	}
	return SuccessResponse(buf.String())
}

// TextOf concatenates the text content of a result. Mostly useful in tests
// and logs.
func TextOf(result *mcp.CallToolResultFor[any]) string {
	var buf bytes.Buffer
	for _, c := range result.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			buf.WriteString(tc.Text)
		}
	}
	return buf.String()
}
