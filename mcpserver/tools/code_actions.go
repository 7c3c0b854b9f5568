package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
)

// RegisterCodeActionsTool registers get_code_actions.
func RegisterCodeActionsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_code_actions",
		mcp.WithDescription("Get quick fixes, refactors, and other code actions available for a range"),
		mcp.WithString("uri", mcp.Description("URI or path to the file"), mcp.Required()),
		mcp.WithNumber("line", mcp.Description("1-based start line number"), mcp.Required()),
		mcp.WithNumber("character", mcp.Description("1-based start character offset"), mcp.Required()),
		mcp.WithNumber("end_line", mcp.Description("1-based end line number (defaults to line)")),
		mcp.WithNumber("end_character", mcp.Description("1-based end character offset (defaults to character)")),
		mcp.WithString("kind_filter", mcp.Description("Comma-separated code action kinds to filter by, e.g. 'quickfix,refactor'")),
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
		endLine := request.GetInt("end_line", line)
		endCharacter := request.GetInt("end_character", character)

		var kindFilter []protocol.CodeActionKind
		if raw := request.GetString("kind_filter", ""); raw != "" {
			for _, k := range strings.Split(raw, ",") {
				if k = strings.TrimSpace(k); k != "" {
					kindFilter = append(kindFilter, protocol.CodeActionKind(k))
				}
			}
		}

		actions, err := translator.GetCodeActions(ctx, uri, line, character, endLine, endCharacter, kindFilter)
		if err != nil {
			logger.Error("get_code_actions: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get code actions: %v", err)), nil
		}

		return mcp.NewToolResultText(formatCodeActions(actions)), nil
	})
}
