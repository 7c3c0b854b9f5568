package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"github.com/mark3labs/mcp-go/mcp"

	"mcplsbridge/bridge"
	"mcplsbridge/logger"
	"mcplsbridge/utils"
)

// RegisterFormatDocumentTool registers format_document. Like rename_symbol,
// it only returns the edit plan; apply_workspace_edit is the separate,
// opt-in tool that writes it to disk.
func RegisterFormatDocumentTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("format_document",
		mcp.WithDescription("Compute a formatting edit plan for a document according to its language server's conventions. Returns the edit plan only; use apply_workspace_edit to write it to disk."),
		mcp.WithString("uri", mcp.Description("URI or path to the file to format"), mcp.Required()),
		mcp.WithNumber("tab_size", mcp.Description("Tab size for formatting (default: 4)")),
		mcp.WithString("insert_spaces", mcp.Description("Use spaces instead of tabs: 'true' (default) or 'false'")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		uri, err := request.RequireString("uri")
		if err != nil {
			logger.Error("format_document: URI parsing failed", err)
			return mcp.NewToolResultError(err.Error()), nil
		}

		tabSize := 4
		if val, err := request.RequireInt("tab_size"); err == nil {
			tabSize = val
		}
		insertSpaces := request.GetString("insert_spaces", "true") != "false"

		edits, err := translator.FormatDocument(ctx, uri, tabSize, insertSpaces)
		if err != nil {
			logger.Error("format_document: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to format document: %v", err)), nil
		}

		content := formatTextEdits(edits)
		if len(edits) > 0 {
			we := &protocol.WorkspaceEdit{
				Changes: map[protocol.DocumentUri][]protocol.TextEdit{
					protocol.DocumentUri(utils.FilePathToURI(uri)): edits,
				},
			}
			if raw, err := json.Marshal(we); err == nil {
				content += fmt.Sprintf("\nTo apply this plan, call apply_workspace_edit with workspace_edit:\n%s\n", raw)
			}
		}

		return mcp.NewToolResultText(content), nil
	})
}
