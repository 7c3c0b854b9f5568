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

// RegisterCallHierarchyTool registers prepare_call_hierarchy, which hands
// back the opaque call hierarchy items get_incoming_calls/get_outgoing_calls
// consume.
func RegisterCallHierarchyTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("prepare_call_hierarchy",
		mcp.WithDescription("Prepare call hierarchy items for the symbol at a position. Pass one item's JSON to get_incoming_calls or get_outgoing_calls to walk its callers/callees."),
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

		items, err := translator.PrepareCallHierarchy(ctx, uri, line, character)
		if err != nil {
			logger.Error("prepare_call_hierarchy: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to prepare call hierarchy: %v", err)), nil
		}

		content := formatCallHierarchyItems(items)
		for i, item := range items {
			if raw, err := json.Marshal(item); err == nil {
				content += fmt.Sprintf("\nitem %d: %s\n", i+1, raw)
			}
		}
		return mcp.NewToolResultText(content), nil
	})
}

// parseCallHierarchyItem decodes a call hierarchy item JSON blob as handed
// back by prepare_call_hierarchy, enforcing the payload size cap before
// unmarshalling.
func parseCallHierarchyItem(raw string) (protocol.CallHierarchyItem, []byte, error) {
	var item protocol.CallHierarchyItem
	data := []byte(raw)
	if err := security.ValidatePayloadSize(data); err != nil {
		return item, data, err
	}
	if err := json.Unmarshal(data, &item); err != nil {
		return item, data, fmt.Errorf("invalid call hierarchy item: %w", err)
	}
	return item, data, nil
}

// RegisterIncomingCallsTool registers get_incoming_calls.
func RegisterIncomingCallsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_incoming_calls",
		mcp.WithDescription("Get the callers of a call hierarchy item produced by prepare_call_hierarchy"),
		mcp.WithString("item", mcp.Description("The JSON of one call hierarchy item from prepare_call_hierarchy"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("item")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		item, data, err := parseCallHierarchyItem(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		calls, err := translator.GetIncomingCalls(ctx, item, data)
		if err != nil {
			logger.Error("get_incoming_calls: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get incoming calls: %v", err)), nil
		}

		return mcp.NewToolResultText(formatIncomingCalls(calls)), nil
	})
}

// RegisterOutgoingCallsTool registers get_outgoing_calls.
func RegisterOutgoingCallsTool(mcpServer ToolServer, translator *bridge.Translator) {
	mcpServer.AddTool(mcp.NewTool("get_outgoing_calls",
		mcp.WithDescription("Get the callees of a call hierarchy item produced by prepare_call_hierarchy"),
		mcp.WithString("item", mcp.Description("The JSON of one call hierarchy item from prepare_call_hierarchy"), mcp.Required()),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw, err := request.RequireString("item")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		item, data, err := parseCallHierarchyItem(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		calls, err := translator.GetOutgoingCalls(ctx, item, data)
		if err != nil {
			logger.Error("get_outgoing_calls: request failed", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to get outgoing calls: %v", err)), nil
		}

		return mcp.NewToolResultText(formatOutgoingCalls(calls)), nil
	})
}
