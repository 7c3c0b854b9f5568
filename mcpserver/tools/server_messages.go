package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
)

// RegisterServerMessagesTool registers get_server_messages.
func RegisterServerMessagesTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_server_messages",
		mcp.WithDescription("Read recent window/showMessage popups from every spawned language server"),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default: 20)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 20)
		messages := translator.GetServerMessages(limit)
		return mcp.NewToolResultText(formatServerMessages(messages)), nil
	})
}
