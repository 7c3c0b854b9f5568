package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterCachedDiagnosticsTool registers get_cached_diagnostics: a pure
// cache read, no document open and no round trip to the downstream server.
func RegisterCachedDiagnosticsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_cached_diagnostics",
		mcp.WithDescription("Read whatever diagnostics are already cached for a file, without opening it or contacting the language server"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uri, err := request.RequireString("uri")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		entry, err := translator.GetCachedDiagnostics(uri)
		if err != nil {
			logger.Error("get_cached_diagnostics: request failed", err)
			return mcp.NewToolResultError("failed to get cached diagnostics"), nil
		}

		return mcp.NewToolResultText(formatDiagnostics(entry)), nil
	})
}
