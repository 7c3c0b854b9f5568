// Package tools registers one MCP tool per Translator method: parse and
// validate the call's arguments, invoke the Translator, and reshape the
// result into the text block the calling agent sees.
package tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcplsbridge/bridge"
)

// ToolServer is the subset of *server.MCPServer every Register*Tool
// function needs, narrow enough that tests can register against a plain
// *server.MCPServer without pulling in the rest of its surface.
type ToolServer interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}

// safeUint32 converts an MCP integer argument to the uint32 the LSP wire
// types expect, rejecting negative values instead of silently wrapping them.
func safeUint32(val int) (uint32, error) {
	if val < 0 {
		return 0, fmt.Errorf("value cannot be negative: %d", val)
	}
	return uint32(val), nil
}

// RegisterAllTools wires every MCP tool this broker exposes against a
// shared Translator.
func RegisterAllTools(mcpServer ToolServer, translator *bridge.Translator) {
	RegisterHoverTool(mcpServer, translator)
	RegisterDefinitionTool(mcpServer, translator)
	RegisterReferencesTool(mcpServer, translator)
	RegisterDiagnosticsTool(mcpServer, translator)
	RegisterCachedDiagnosticsTool(mcpServer, translator)
	RegisterRenameTool(mcpServer, translator)
	RegisterCompletionsTool(mcpServer, translator)
	RegisterDocumentSymbolsTool(mcpServer, translator)
	RegisterFormatDocumentTool(mcpServer, translator)
	RegisterWorkspaceSymbolSearchTool(mcpServer, translator)
	RegisterCodeActionsTool(mcpServer, translator)
	RegisterCallHierarchyTool(mcpServer, translator)
	RegisterIncomingCallsTool(mcpServer, translator)
	RegisterOutgoingCallsTool(mcpServer, translator)
	RegisterServerLogsTool(mcpServer, translator)
	RegisterServerMessagesTool(mcpServer, translator)
	RegisterServerStatusTool(mcpServer, translator)
	RegisterApplyWorkspaceEditTool(mcpServer, translator)
}
