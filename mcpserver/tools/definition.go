package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterDefinitionTool registers get_definition.
func RegisterDefinitionTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_definition",
		mcp.WithDescription("Get the definition location(s) of the symbol at a position"),
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

		locations, err := translator.Definition(ctx, uri, line, character)
		if err != nil {
			logger.Error("get_definition: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get definition: %v", err)), nil
		}

		return mcp.NewToolResultText(formatLocations("DEFINITIONS", locations)), nil
	})
}
