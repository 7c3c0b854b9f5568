package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
	"mcplsbridge/security"
)

// RegisterApplyWorkspaceEditTool registers apply_workspace_edit: the
// supplemental, explicitly-invoked tool that writes a WorkspaceEdit
// previously returned by rename_symbol or format_document to disk.
func RegisterApplyWorkspaceEditTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("apply_workspace_edit",
		mcp.WithDescription("Write a previously computed edit plan to disk. Pass the exact workspace_edit JSON returned by rename_symbol or format_document."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("workspace_edit", mcp.Description("The JSON of the WorkspaceEdit to apply"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("workspace_edit")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data := []byte(raw)
		if err := security.ValidatePayloadSize(data); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var we protocol.WorkspaceEdit
		if err := json.Unmarshal(data, &we); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid workspace_edit: %v", err)), nil
		}

		if err := translator.ApplyWorkspaceEdit(&we); err != nil {
			logger.Error("apply_workspace_edit: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to apply workspace edit: %v", err)), nil
		}

		return mcp.NewToolResultText("Workspace edit applied successfully"), nil
	})
}
