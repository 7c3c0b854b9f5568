package tools

import (
	"context"
	"fmt"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterWorkspaceSymbolSearchTool registers workspace_symbol_search.
func RegisterWorkspaceSymbolSearchTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("workspace_symbol_search",
		mcp.WithDescription("Search symbol names across the whole workspace, using the first Ready language server that declares workspace/symbol support"),
		mcp.WithString("query", mcp.Description("Symbol name or substring to search for"), mcp.Required()),
		mcp.WithNumber("kind", mcp.Description("Restrict to this LSP SymbolKind (optional, e.g. 12 for Function)")),
		mcp.WithNumber("limit", mcp.Description("Maximum results to return (default: 100)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 100)

		var kindFilter *protocol.SymbolKind
		if kind, err := request.RequireInt("kind"); err == nil {
			k := protocol.SymbolKind(kind)
			kindFilter = &k
		}

		symbols, err := translator.WorkspaceSymbolSearch(ctx, query, kindFilter, limit)
		if err != nil {
			logger.Error("workspace_symbol_search: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to search workspace symbols: %v", err)), nil
		}

		return mcp.NewToolResultText(formatWorkspaceSymbols(symbols)), nil
	})
}
