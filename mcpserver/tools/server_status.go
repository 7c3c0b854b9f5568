package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
)

// RegisterServerStatusTool registers get_server_status.
func RegisterServerStatusTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_server_status",
		mcp.WithDescription("List every spawned language server, its connection state, and open document count"),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		statuses := translator.GetServerStatus()

		var result strings.Builder
		result.WriteString("=== SERVER STATUS ===\n")
		if len(statuses) == 0 {
			result.WriteString("No language servers spawned yet")
			return mcp.NewToolResultText(result.String()), nil
		}
		for i, s := range statuses {
			result.WriteString(fmt.Sprintf("%d. %s (%s) - %s, %d open document(s)\n", i+1, s.LanguageID, s.Command, s.State, s.OpenDocuments))
		}
		return mcp.NewToolResultText(result.String()), nil
	})
}
