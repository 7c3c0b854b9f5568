package lspclient

import (
	"context"
	"time"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

const defaultRequestTimeout = 10 * time.Second

// DidOpen sends textDocument/didOpen for a freshly tracked document.
func (c *Client) DidOpen(ctx context.Context, uri, languageID, text string, version int32) error {
	return c.Notify(ctx, "textDocument/didOpen", protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			Uri:        protocol.DocumentUri(uri),
			LanguageId: protocol.LanguageKind(languageID),
			Version:    version,
			Text:       text,
		},
	})
}

// DidChange sends a full-document textDocument/didChange, per spec.md's
// chosen sync strategy (single change item, no range, full new text).
func (c *Client) DidChange(ctx context.Context, uri string, version int32, fullText string) error {
	return c.Notify(ctx, "textDocument/didChange", protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			Uri:     protocol.DocumentUri(uri),
			Version: version,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Value: protocol.TextDocumentContentChangeWholeDocument{Text: fullText}},
		},
	})
}

// DidClose sends textDocument/didClose.
func (c *Client) DidClose(ctx context.Context, uri string) error {
	return c.Notify(ctx, "textDocument/didClose", protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
	})
}

// Hover sends textDocument/hover.
func (c *Client) Hover(ctx context.Context, uri string, line, character uint32) (*protocol.Hover, error) {
	var result protocol.Hover
	err := c.Request(ctx, "textDocument/hover", protocol.HoverParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
	}, &result, c.requestTimeout())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Definition sends textDocument/definition.
func (c *Client) Definition(ctx context.Context, uri string, line, character uint32) ([]protocol.Location, error) {
	var result []protocol.Location
	err := c.Request(ctx, "textDocument/definition", protocol.DefinitionParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
	}, &result, c.requestTimeout())
	return result, err
}

// References sends textDocument/references.
func (c *Client) References(ctx context.Context, uri string, line, character uint32, includeDeclaration bool) ([]protocol.Location, error) {
	var result []protocol.Location
	err := c.Request(ctx, "textDocument/references", protocol.ReferenceParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
		Context:      protocol.ReferenceContext{IncludeDeclaration: includeDeclaration},
	}, &result, c.requestTimeout())
	return result, err
}

// Rename sends textDocument/rename.
func (c *Client) Rename(ctx context.Context, uri string, line, character uint32, newName string) (*protocol.WorkspaceEdit, error) {
	var result protocol.WorkspaceEdit
	err := c.Request(ctx, "textDocument/rename", protocol.RenameParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
		NewName:      newName,
	}, &result, c.requestTimeout())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Completion sends textDocument/completion.
func (c *Client) Completion(ctx context.Context, uri string, line, character uint32, triggerChar string) (*protocol.CompletionList, error) {
	params := protocol.CompletionParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
	}
	if triggerChar != "" {
		params.Context = &protocol.CompletionContext{TriggerCharacter: triggerChar}
	}
	var result protocol.CompletionList
	err := c.Request(ctx, "textDocument/completion", params, &result, c.requestTimeout())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DocumentSymbols sends textDocument/documentSymbol.
func (c *Client) DocumentSymbols(ctx context.Context, uri string) ([]protocol.DocumentSymbol, error) {
	var result []protocol.DocumentSymbol
	err := c.Request(ctx, "textDocument/documentSymbol", protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
	}, &result, c.requestTimeout())
	return result, err
}

// Formatting sends textDocument/formatting.
func (c *Client) Formatting(ctx context.Context, uri string, tabSize uint32, insertSpaces bool) ([]protocol.TextEdit, error) {
	var result []protocol.TextEdit
	err := c.Request(ctx, "textDocument/formatting", protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Options: protocol.FormattingOptions{
			TabSize:      tabSize,
			InsertSpaces: insertSpaces,
		},
	}, &result, c.requestTimeout())
	return result, err
}

// WorkspaceSymbols sends workspace/symbol.
func (c *Client) WorkspaceSymbols(ctx context.Context, query string) ([]protocol.WorkspaceSymbol, error) {
	var result []protocol.WorkspaceSymbol
	err := c.Request(ctx, "workspace/symbol", protocol.WorkspaceSymbolParams{Query: query}, &result, c.requestTimeout())
	return result, err
}

// CodeActions sends textDocument/codeAction.
func (c *Client) CodeActions(ctx context.Context, uri string, startLine, startChar, endLine, endChar uint32, kindFilter []protocol.CodeActionKind) ([]protocol.CodeAction, error) {
	var result []protocol.CodeAction
	err := c.Request(ctx, "textDocument/codeAction", protocol.CodeActionParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Range: protocol.Range{
			Start: protocol.Position{Line: startLine, Character: startChar},
			End:   protocol.Position{Line: endLine, Character: endChar},
		},
		Context: protocol.CodeActionContext{Only: kindFilter},
	}, &result, c.requestTimeout())
	return result, err
}

// PrepareCallHierarchy sends textDocument/prepareCallHierarchy.
func (c *Client) PrepareCallHierarchy(ctx context.Context, uri string, line, character uint32) ([]protocol.CallHierarchyItem, error) {
	var result []protocol.CallHierarchyItem
	err := c.Request(ctx, "textDocument/prepareCallHierarchy", protocol.CallHierarchyPrepareParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
		Position:     protocol.Position{Line: line, Character: character},
	}, &result, c.requestTimeout())
	return result, err
}

// IncomingCalls sends callHierarchy/incomingCalls.
func (c *Client) IncomingCalls(ctx context.Context, item protocol.CallHierarchyItem) ([]protocol.CallHierarchyIncomingCall, error) {
	var result []protocol.CallHierarchyIncomingCall
	err := c.Request(ctx, "callHierarchy/incomingCalls", protocol.CallHierarchyIncomingCallsParams{Item: item}, &result, c.requestTimeout())
	return result, err
}

// OutgoingCalls sends callHierarchy/outgoingCalls.
func (c *Client) OutgoingCalls(ctx context.Context, item protocol.CallHierarchyItem) ([]protocol.CallHierarchyOutgoingCall, error) {
	var result []protocol.CallHierarchyOutgoingCall
	err := c.Request(ctx, "callHierarchy/outgoingCalls", protocol.CallHierarchyOutgoingCallsParams{Item: item}, &result, c.requestTimeout())
	return result, err
}

// WorkspaceDiagnostic sends workspace/diagnostic.
func (c *Client) WorkspaceDiagnostic(ctx context.Context, identifier string) (*protocol.WorkspaceDiagnosticReport, error) {
	var result protocol.WorkspaceDiagnosticReport
	err := c.Request(ctx, "workspace/diagnostic", protocol.WorkspaceDiagnosticParams{Identifier: identifier}, &result, c.requestTimeout())
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DocumentDiagnostic sends textDocument/diagnostic.
func (c *Client) DocumentDiagnostic(ctx context.Context, uri string) (*protocol.DocumentDiagnosticReport, error) {
	var result protocol.DocumentDiagnosticReport
	err := c.Request(ctx, "textDocument/diagnostic", protocol.DocumentDiagnosticParams{
		TextDocument: protocol.TextDocumentIdentifier{Uri: protocol.DocumentUri(uri)},
	}, &result, c.requestTimeout())
	if err != nil {
		return nil, err
	}
	return &result, nil
}
