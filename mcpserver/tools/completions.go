package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterCompletionsTool registers get_completions.
func RegisterCompletionsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_completions",
		mcp.WithDescription("Get completion suggestions at a position"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
		mcp.WithNumber("line", mcp.Description("1-based line number"), mcp.Required()),
		mcp.WithNumber("character", mcp.Description("1-based character offset"), mcp.Required()),
		mcp.WithString("trigger_character", mcp.Description("Character that triggered completion, if any")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uri, err := request.RequireString("uri")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		line, err := request.RequireInt("line")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		character, err := request.RequireInt("character")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		trigger := request.GetString("trigger_character", "")

		list, err := translator.GetCompletions(ctx, uri, line, character, trigger)
		if err != nil {
			logger.Error("get_completions: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get completions: %v", err)), nil
		}

		return mcp.NewToolResultText(formatCompletions(list)), nil
	})
}
