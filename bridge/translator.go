// Package bridge is the Translator / Tool Core: one method per MCP tool,
// each following the validate -> dispatch -> ensure-open -> translate ->
// request -> reshape pipeline the teacher's bridge package used, rebuilt
// against the dispatch.Registry/lspclient.Client/documents.Tracker split.
package bridge

import (
	"context"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"mcplsbridge/collections"
	"mcplsbridge/dispatch"
	"mcplsbridge/documents"
	"mcplsbridge/errs"
	"mcplsbridge/lspclient"
	"mcplsbridge/notifications"
	"mcplsbridge/position"
	"mcplsbridge/security"
	"mcplsbridge/utils"
)

// Translator is the broker's tool core: one instance shared by every
// registered MCP tool handler.
type Translator struct {
	registry *dispatch.Registry
	roots    []string
}

func NewTranslator(registry *dispatch.Registry, roots []string) *Translator {
	return &Translator{registry: registry, roots: roots}
}

// opened bundles the pieces every file-scoped tool needs once it has
// resolved a path to a live client and a tracked document.
type opened struct {
	entry *dispatch.Entry
	state documents.State
	enc   position.Encoding
}

// open validates path against the workspace roots, dispatches to (and
// lazily spawns) the owning client, and ensures the document is tracked,
// sending textDocument/didOpen on first open.
func (t *Translator) open(ctx context.Context, path string) (*opened, error) {
	if err := security.ValidateFileScheme(path); err != nil {
		return nil, err
	}
	canonical, err := security.ValidateWorkspacePath(utils.URIToFilePath(path), t.roots)
	if err != nil {
		return nil, err
	}

	entry, err := t.registry.Dispatch(ctx, canonical)
	if err != nil {
		return nil, err
	}

	state, fresh, err := entry.Docs.EnsureOpen(canonical)
	if err != nil {
		return nil, err
	}
	if fresh {
		if err := entry.Client.DidOpen(ctx, state.URI, state.LanguageID, state.Content, state.Version); err != nil {
			return nil, err
		}
	}

	enc := position.FromLSPString(entry.Client.PositionEncoding())
	return &opened{entry: entry, state: state, enc: enc}, nil
}

// position validates and converts an MCP 1-based line/character pair into
// the 0-based, negotiated-encoding coordinates o's client expects.
func (o *opened) position(line, character int) (uint32, uint32, error) {
	if err := security.ValidateCoordinate("line", line); err != nil {
		return 0, 0, err
	}
	if err := security.ValidateCoordinate("character", character); err != nil {
		return 0, 0, err
	}
	lspLine, lspChar, err := position.ToLSP(line, character, o.enc, position.NewLinesOf(o.state.Content))
	if err != nil {
		return 0, 0, err
	}
	return uint32(lspLine), uint32(lspChar), nil
}

// Hover implements get_hover.
func (t *Translator) Hover(ctx context.Context, path string, line, character int) (*protocol.Hover, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.Hover(ctx, o.state.URI, lspLine, lspChar)
}

// Definition implements get_definition.
func (t *Translator) Definition(ctx context.Context, path string, line, character int) ([]protocol.Location, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.Definition(ctx, o.state.URI, lspLine, lspChar)
}

// References implements get_references.
func (t *Translator) References(ctx context.Context, path string, line, character int, includeDeclaration bool) ([]protocol.Location, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.References(ctx, o.state.URI, lspLine, lspChar, includeDeclaration)
}

// GetDiagnostics implements get_diagnostics: opens the document (so the
// server starts analyzing it) then returns whatever is already cached,
// per spec's Open Question (b) decision to return immediately rather than
// wait for a fresh publishDiagnostics.
func (t *Translator) GetDiagnostics(ctx context.Context, path string) (notifications.DiagnosticsEntry, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return notifications.DiagnosticsEntry{}, err
	}
	entry, _ := t.registry.Cache().GetDiagnostics(o.state.URI)
	return entry, nil
}

// GetCachedDiagnostics implements get_cached_diagnostics: a cache read with
// no side effect on the document or the downstream server.
func (t *Translator) GetCachedDiagnostics(path string) (notifications.DiagnosticsEntry, error) {
	if err := security.ValidateFileScheme(path); err != nil {
		return notifications.DiagnosticsEntry{}, err
	}
	canonical, err := security.ValidateWorkspacePath(utils.URIToFilePath(path), t.roots)
	if err != nil {
		return notifications.DiagnosticsEntry{}, err
	}
	uri := utils.FilePathToURI(canonical)
	entry, _ := t.registry.Cache().GetDiagnostics(uri)
	return entry, nil
}

// RenameSymbol implements rename_symbol: always returns an edit plan, never
// applies it (apply_workspace_edit is the separate, opt-in operation that
// does).
func (t *Translator) RenameSymbol(ctx context.Context, path string, line, character int, newName string) (*protocol.WorkspaceEdit, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.Rename(ctx, o.state.URI, lspLine, lspChar, newName)
}

// GetCompletions implements get_completions.
func (t *Translator) GetCompletions(ctx context.Context, path string, line, character int, trigger string) (*protocol.CompletionList, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.Completion(ctx, o.state.URI, lspLine, lspChar, trigger)
}

// GetDocumentSymbols implements get_document_symbols.
func (t *Translator) GetDocumentSymbols(ctx context.Context, path string) ([]protocol.DocumentSymbol, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.DocumentSymbols(ctx, o.state.URI)
}

// FormatDocument implements format_document: returns the server's edit
// plan only, never writes it to disk.
func (t *Translator) FormatDocument(ctx context.Context, path string, tabSize int, insertSpaces bool) ([]protocol.TextEdit, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	if tabSize <= 0 {
		tabSize = 4
	}
	return o.entry.Client.Formatting(ctx, o.state.URI, uint32(tabSize), insertSpaces)
}

// WorkspaceSymbolSearch implements workspace_symbol_search: uses the first
// Ready client that declares workspace-symbol support, per spec.md §4.7;
// fails Unsupported if no client qualifies.
func (t *Translator) WorkspaceSymbolSearch(ctx context.Context, query string, kindFilter *protocol.SymbolKind, limit int) ([]protocol.WorkspaceSymbol, error) {
	if limit <= 0 {
		limit = 100
	}

	var chosen *dispatch.Entry
	for _, e := range t.registry.Entries() {
		if e.Client.Status() != lspclient.Ready {
			continue
		}
		if supportsWorkspaceSymbol(e.Client.ServerCapabilities()) {
			chosen = e
			break
		}
	}
	if chosen == nil {
		return nil, errs.Newf(errs.Unsupported, "no Ready LSP client declares workspace/symbol support")
	}

	results, err := chosen.Client.WorkspaceSymbols(ctx, query)
	if err != nil {
		return nil, err
	}

	if kindFilter != nil {
		filtered := results[:0]
		for _, sym := range results {
			if sym.Kind == *kindFilter {
				filtered = append(filtered, sym)
			}
		}
		results = filtered
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetCodeActions implements get_code_actions.
func (t *Translator) GetCodeActions(ctx context.Context, path string, startLine, startChar, endLine, endChar int, kindFilter []protocol.CodeActionKind) ([]protocol.CodeAction, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspStartLine, lspStartChar, err := o.position(startLine, startChar)
	if err != nil {
		return nil, err
	}
	lspEndLine, lspEndChar, err := o.position(endLine, endChar)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.CodeActions(ctx, o.state.URI, lspStartLine, lspStartChar, lspEndLine, lspEndChar, kindFilter)
}

// PrepareCallHierarchy implements prepare_call_hierarchy.
func (t *Translator) PrepareCallHierarchy(ctx context.Context, path string, line, character int) ([]protocol.CallHierarchyItem, error) {
	o, err := t.open(ctx, path)
	if err != nil {
		return nil, err
	}
	lspLine, lspChar, err := o.position(line, character)
	if err != nil {
		return nil, err
	}
	return o.entry.Client.PrepareCallHierarchy(ctx, o.state.URI, lspLine, lspChar)
}

// GetIncomingCalls implements get_incoming_calls. item is opaque call
// hierarchy state handed back by prepare_call_hierarchy; raw is its
// undecoded JSON form, used only to enforce the payload size cap.
func (t *Translator) GetIncomingCalls(ctx context.Context, item protocol.CallHierarchyItem, raw []byte) ([]protocol.CallHierarchyIncomingCall, error) {
	entry, err := t.dispatchByItem(ctx, item, raw)
	if err != nil {
		return nil, err
	}
	return entry.Client.IncomingCalls(ctx, item)
}

// GetOutgoingCalls implements get_outgoing_calls.
func (t *Translator) GetOutgoingCalls(ctx context.Context, item protocol.CallHierarchyItem, raw []byte) ([]protocol.CallHierarchyOutgoingCall, error) {
	entry, err := t.dispatchByItem(ctx, item, raw)
	if err != nil {
		return nil, err
	}
	return entry.Client.OutgoingCalls(ctx, item)
}

// dispatchByItem validates the opaque call-hierarchy item payload and
// dispatches by the language its embedded URI belongs to.
func (t *Translator) dispatchByItem(ctx context.Context, item protocol.CallHierarchyItem, raw []byte) (*dispatch.Entry, error) {
	if err := security.ValidatePayloadSize(raw); err != nil {
		return nil, err
	}
	if err := security.ValidateFileScheme(string(item.Uri)); err != nil {
		return nil, err
	}
	path, err := security.ValidateWorkspacePath(utils.URIToFilePath(string(item.Uri)), t.roots)
	if err != nil {
		return nil, err
	}
	return t.registry.Dispatch(ctx, path)
}

// GetServerLogs implements get_server_logs.
func (t *Translator) GetServerLogs(limit int, minLevel notifications.LogLevel) []notifications.LogEntry {
	if limit <= 0 {
		limit = 50
	}
	return t.registry.Cache().GetLogs(limit, minLevel)
}

// GetServerMessages implements get_server_messages.
func (t *Translator) GetServerMessages(limit int) []notifications.ServerMessage {
	if limit <= 0 {
		limit = 20
	}
	return t.registry.Cache().GetMessages(limit)
}

// ServerStatus is one entry of the get_server_status registry snapshot.
type ServerStatus struct {
	LanguageID    string
	Command       string
	State         string
	OpenDocuments int
}

// GetServerStatus implements get_server_status: a snapshot of every spawned
// entry's spec, client state, and open-document count.
func (t *Translator) GetServerStatus() []ServerStatus {
	byLang := make(map[string]*dispatch.Entry)
	for _, e := range t.registry.Entries() {
		byLang[e.Spec.LanguageID] = e
	}
	statuses := collections.TransformMap(byLang, func(e *dispatch.Entry) ServerStatus {
		return ServerStatus{
			LanguageID:    e.Spec.LanguageID,
			Command:       e.Spec.Command,
			State:         e.Client.Status().String(),
			OpenDocuments: e.Docs.Len(),
		}
	})

	out := make([]ServerStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s)
	}
	return out
}

// ApplyWorkspaceEdit implements the supplemental apply_workspace_edit tool
// (§4.7A): writes an already-computed WorkspaceEdit (typically the result
// of a prior rename_symbol or format_document call) to disk. Every target
// path is re-validated against the workspace roots before any write,
// rename, or delete.
func (t *Translator) ApplyWorkspaceEdit(we *protocol.WorkspaceEdit) error {
	return applyWorkspaceEdit(t.roots, we)
}

func supportsWorkspaceSymbol(caps protocol.ServerCapabilities) bool {
	return caps.WorkspaceSymbolProvider != nil
}
