package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterHoverTool registers get_hover.
func RegisterHoverTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_hover",
		mcp.WithDescription("Get hover information (type, documentation) for the symbol at a position"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
		mcp.WithNumber("line", mcp.Description("1-based line number"), mcp.Required()),
		mcp.WithNumber("character", mcp.Description("1-based character offset"), mcp.Required()),
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

		hover, err := translator.Hover(ctx, uri, line, character)
		if err != nil {
			logger.Error("get_hover: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get hover information: %v", err)), nil
		}
		if hover == nil {
			return mcp.NewToolResultText("No hover information available"), nil
		}

		return mcp.NewToolResultText(formatHoverContent(hover.Contents)), nil
	})
}
