package lspclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"

	"mcplsbridge/logger"
	"mcplsbridge/notifications"
)

// handler dispatches unsolicited messages from the LSP server: diagnostics,
// log/show messages, and the handful of requests an LSP server may issue
// back to its client.
type handler struct {
	client *Client
}

type diagnosticsParams struct {
	URI         string                     `json:"uri"`
	Version     *int32                     `json:"version"`
	Diagnostics []notifications.Diagnostic `json:"diagnostics"`
}

type logMessageParams struct {
	Type    int    `json:"type"`
	Message string `json:"message"`
}

// notificationKind distinguishes the three asynchronous notification types
// the bridge caches, queued on Client.notifyCh for its consumer goroutine.
type notificationKind int

const (
	notifyDiagnostics notificationKind = iota
	notifyShowMessage
	notifyLogMessage
)

// queuedNotification is one decoded publishDiagnostics/logMessage/
// showMessage payload waiting for the consumer goroutine to apply it to the
// cache.
type queuedNotification struct {
	kind    notificationKind
	uri     string
	version *int32
	diags   []notifications.Diagnostic
	level   notifications.LogLevel
	text    string
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	switch req.Method {
	case "textDocument/publishDiagnostics":
		var params diagnosticsParams
		if err := json.Unmarshal(*req.Params, &params); err != nil {
			logger.Debug(fmt.Sprintf("malformed publishDiagnostics: %v", err))
			return
		}
		h.client.enqueueNotification(queuedNotification{
			kind:    notifyDiagnostics,
			uri:     params.URI,
			version: params.Version,
			diags:   params.Diagnostics,
		})

	case "window/showMessage":
		var params logMessageParams
		if err := json.Unmarshal(*req.Params, &params); err == nil {
			h.client.enqueueNotification(queuedNotification{
				kind:  notifyShowMessage,
				level: notifications.LogLevel(params.Type),
				text:  params.Message,
			})
		}

	case "window/logMessage":
		var params logMessageParams
		if err := json.Unmarshal(*req.Params, &params); err == nil {
			h.client.enqueueNotification(queuedNotification{
				kind:  notifyLogMessage,
				level: notifications.LogLevel(params.Type),
				text:  params.Message,
			})
		}

	case "client/registerCapability", "client/unregisterCapability":
		_ = conn.Reply(ctx, req.ID, map[string]any{})

	case "workspace/configuration":
		_ = conn.Reply(ctx, req.ID, []any{})

	case "workspace/workspaceFolders":
		_ = conn.Reply(ctx, req.ID, nil)

	case "$/progress":
		// Accepted but not yet acted on, per spec.md's external-interfaces note.

	default:
		if req.Notif {
			logger.Debug(fmt.Sprintf("unhandled notification: %s", req.Method))
			return
		}
		logger.Debug(fmt.Sprintf("unhandled request: %s", req.Method))
		_ = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: "method not found",
		})
	}
}
