package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
	"mcplsbridge/mcpserver/tools"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SetupMCPServer configures the MCP server with every LSP bridge tool
// wired against translator.
func SetupMCPServer(translator *bridge.Translator) *server.MCPServer {
	hooks := &server.Hooks{}

	hooks.AddBeforeAny(func(ctx context.Context, id any, method mcp.MCPMethod, message any) {
		logger.Debug("beforeAny:", method, id, message)
	})
	hooks.AddOnSuccess(func(ctx context.Context, id any, method mcp.MCPMethod, message any, result any) {
		logger.Debug("onSuccess:", method, id, message, result)
	})
	hooks.AddOnError(func(ctx context.Context, id any, method mcp.MCPMethod, message any, err error) {
		logger.Error("onError:", method, id, message, err)
	})
	hooks.AddBeforeInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest) {
		logger.Debug("beforeInitialize:", id, message)
	})
	hooks.AddOnRequestInitialization(func(ctx context.Context, id any, message any) error {
		idStr := fmt.Sprintf("%v", id)

		var prettyJSON bytes.Buffer
		switch v := message.(type) {
		case []byte:
			if err := json.Indent(&prettyJSON, v, "", "  "); err != nil {
				prettyJSON.Write(v) // fallback if not valid JSON
			}
		case string:
			if err := json.Indent(&prettyJSON, []byte(v), "", "  "); err != nil {
				prettyJSON.WriteString(v) // fallback
			}
		default:
			jsonData, _ := json.MarshalIndent(v, "", "  ")
			prettyJSON.Write(jsonData)
		}

		logger.Debug(fmt.Sprintf("AddOnRequestInitialization: id=%s, message=%s", idStr, prettyJSON.String()))
		return nil
	})
	hooks.AddAfterInitialize(func(ctx context.Context, id any, message *mcp.InitializeRequest, result *mcp.InitializeResult) {
		logger.Debug("afterInitialize:", id, message, result)
	})
	hooks.AddAfterCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest, result *mcp.CallToolResult) {
		logger.Debug("afterCallTool:", id, message, result)
	})
	hooks.AddBeforeCallTool(func(ctx context.Context, id any, message *mcp.CallToolRequest) {
		logger.Debug("beforeCallTool:", id, message)
	})

	mcpServer := server.NewMCPServer(
		"mcplsbridge",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithLogging(),
		server.WithHooks(hooks),
		server.WithInstructions(`This MCP server provides comprehensive Language Server Protocol (LSP) integration for advanced code analysis and manipulation across multiple programming languages.

## Key Capabilities & Usage Flow

The bridge offers tools for:

1.  **Code Discovery & Understanding**:
    *   **Symbol Search**: Locate definitions, references, document symbols, and workspace symbols.
    *   **Contextual Help**: Get hover documentation, type information, and completions.
    *   **Diagnostics**: Request fresh diagnostics for a file, or read the cached ones.
2.  **Code Improvement & Navigation**:
    *   **Refactoring**: List code actions and plan symbol renames; rename_symbol returns an edit plan that apply_workspace_edit writes to disk.
    *   **Formatting**: Plan document formatting edits.
    *   **Navigation**: Walk call hierarchies (callers and callees).
3.  **Server Insight**: Read language server logs, messages, and status.

## Multi-Language Support
The bridge routes each file to a language server by extension, glob pattern, and project markers, starting servers on first use. Servers stop when the bridge shuts down.`),
	)

	// Register all MCP tools
	tools.RegisterAllTools(mcpServer, translator)

	// Set up default session for clients that don't explicitly create sessions
	setupDefaultSession(mcpServer)

	return mcpServer
}

// setupDefaultSession creates a default session for clients
func setupDefaultSession(mcpServer *server.MCPServer) {
	// Create a default session that clients can use
	defaultSession := NewLSPBridgeSession("default")

	if err := mcpServer.RegisterSession(context.Background(), defaultSession); err != nil {
		logger.Error("Failed to register default session", err)
	} else {
		logger.Info("Default session registered successfully")
	}
}
