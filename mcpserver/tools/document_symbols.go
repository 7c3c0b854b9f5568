package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterDocumentSymbolsTool registers get_document_symbols.
func RegisterDocumentSymbolsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_document_symbols",
		mcp.WithDescription("Get the outline of symbols declared in a document"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uri, err := request.RequireString("uri")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		symbols, err := translator.GetDocumentSymbols(ctx, uri)
		if err != nil {
			logger.Error("get_document_symbols: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get document symbols: %v", err)), nil
		}

		return mcp.NewToolResultText(formatDocumentSymbols(symbols)), nil
	})
}
