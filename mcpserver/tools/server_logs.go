package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/notifications"
)

// RegisterServerLogsTool registers get_server_logs.
func RegisterServerLogsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_server_logs",
		mcp.WithDescription("Read recent window/logMessage entries from every spawned language server"),
		mcp.WithNumber("limit", mcp.Description("Maximum entries to return (default: 50)")),
		mcp.WithString("min_level", mcp.Description("Minimum severity: error, warn, info, or debug (default: all)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 50)

		var minLevel notifications.LogLevel
		switch request.GetString("min_level", "") {
		case "error":
			minLevel = notifications.LogError
		case "warn":
			minLevel = notifications.LogWarn
		case "info":
			minLevel = notifications.LogInfo
		case "debug":
			minLevel = notifications.LogDebug
		}

		logs := translator.GetServerLogs(limit, minLevel)
		return mcp.NewToolResultText(formatServerLogs(logs)), nil
	})
}
