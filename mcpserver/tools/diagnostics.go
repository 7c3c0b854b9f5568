package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterDiagnosticsTool registers get_diagnostics.
func RegisterDiagnosticsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_diagnostics",
		mcp.WithDescription("Open a document and return its current diagnostics (errors, warnings)"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uri, err := request.RequireString("uri")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := translator.GetDiagnostics(ctx, uri)
		if err != nil {
			logger.Error("get_diagnostics: request failed", err)
			return mcp.NewToolResultError("failed to get diagnostics"), nil
		}

		return mcp.NewToolResultText(formatDiagnostics(entry)), nil
	})
}
