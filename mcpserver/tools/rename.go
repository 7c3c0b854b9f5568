package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterRenameTool registers rename_symbol: always returns the edit plan,
// never applies it. apply_workspace_edit is the separate, opt-in operation
// that writes a plan to disk.
func RegisterRenameTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("rename_symbol",
		mcp.WithDescription("Compute a rename plan for the symbol at a position. Returns the edit plan only; use apply_workspace_edit to write it to disk."),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
		mcp.WithNumber("line", mcp.Description("1-based line number"), mcp.Required()),
		mcp.WithNumber("character", mcp.Description("1-based character offset"), mcp.Required()),
		mcp.WithString("new_name", mcp.Description("New name for the symbol"), mcp.Required()),
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
		newName, err := request.RequireString("new_name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		edit, err := translator.RenameSymbol(ctx, uri, line, character, newName)
		if err != nil {
			logger.Error("rename_symbol: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to rename symbol: %v", err)), nil
		}

		content := formatWorkspaceEdit(edit)
		if raw, err := json.Marshal(edit); err == nil {
			content += fmt.Sprintf("\n\nTo apply this plan, call apply_workspace_edit with workspace_edit:\n%s\n", raw)
		}
		return mcp.NewToolResultText(content), nil
	})
}
