package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterReferencesTool registers get_references.
func RegisterReferencesTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_references",
		mcp.WithDescription("Get every reference to the symbol at a position"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
		mcp.WithNumber("line", mcp.Description("1-based line number"), mcp.Required()),
		mcp.WithNumber("character", mcp.Description("1-based character offset"), mcp.Required()),
		mcp.WithString("include_declaration", mcp.Description("Include the declaration itself: 'true' (default) or 'false'")),
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
		includeDeclaration := request.GetString("include_declaration", "true") != "false"

		locations, err := translator.References(ctx, uri, line, character, includeDeclaration)
		if err != nil {
			logger.Error("get_references: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get references: %v", err)), nil
		}

		return mcp.NewToolResultText(formatLocations("REFERENCES", locations)), nil
	})
}
