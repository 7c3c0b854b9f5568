package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"mcplsbridge/notifications"
)

// symbolKindToString converts a SymbolKind to a human-readable string.
func symbolKindToString(kind protocol.SymbolKind) string {
	switch kind {
	case protocol.SymbolKindFile:
		return "file"
	case protocol.SymbolKindModule:
		return "module"
	case protocol.SymbolKindNamespace:
		return "namespace"
	case protocol.SymbolKindPackage:
		return "package"
	case protocol.SymbolKindClass:
		return "class"
	case protocol.SymbolKindMethod:
		return "method"
	case protocol.SymbolKindProperty:
		return "property"
	case protocol.SymbolKindField:
		return "field"
	case protocol.SymbolKindConstructor:
		return "constructor"
	case protocol.SymbolKindEnum:
		return "enum"
	case protocol.SymbolKindInterface:
		return "interface"
	case protocol.SymbolKindFunction:
		return "function"
	case protocol.SymbolKindVariable:
		return "variable"
	case protocol.SymbolKindConstant:
		return "constant"
	case protocol.SymbolKindString:
		return "string"
	case protocol.SymbolKindNumber:
		return "number"
	case protocol.SymbolKindBoolean:
		return "boolean"
	case protocol.SymbolKindArray:
		return "array"
	case protocol.SymbolKindObject:
		return "object"
	case protocol.SymbolKindKey:
		return "key"
	case protocol.SymbolKindNull:
		return "null"
	case protocol.SymbolKindEnumMember:
		return "enum member"
	case protocol.SymbolKindStruct:
		return "struct"
	case protocol.SymbolKindEvent:
		return "event"
	case protocol.SymbolKindOperator:
		return "operator"
	case protocol.SymbolKindTypeParameter:
		return "type parameter"
	default:
		return fmt.Sprintf("unknown(%d)", kind)
	}
}

// formatHoverContent renders the Or3[MarkupContent, MarkedString,
// []MarkedString] hover payload as plain text.
func formatHoverContent(contents protocol.Or3[protocol.MarkupContent, protocol.MarkedString, []protocol.MarkedString]) string {
	switch v := contents.Value.(type) {
	case protocol.MarkupContent:
		return "=== HOVER INFORMATION ===\n" + v.Value
	case protocol.MarkedString:
		return fmt.Sprintf("=== HOVER INFORMATION ===\n%v", v)
	case []protocol.MarkedString:
		var result strings.Builder
		result.WriteString("=== HOVER INFORMATION ===\n")
		for i, item := range v {
			if i > 0 {
				result.WriteString("\n---\n")
			}
			result.WriteString(fmt.Sprintf("%v", item))
		}
		return result.String()
	default:
		return "=== HOVER INFORMATION ===\nNo hover result available"
	}
}

func diagnosticSeverity(d notifications.Diagnostic) string {
	raw, ok := d["severity"]
	if !ok {
		return "Unknown"
	}
	n, ok := raw.(float64) // json.Unmarshal decodes numbers into float64
	if !ok {
		return "Unknown"
	}
	switch int(n) {
	case 1:
		return "Error"
	case 2:
		return "Warning"
	case 3:
		return "Information"
	case 4:
		return "Hint"
	default:
		return "Unknown"
	}
}

func diagnosticSeverityIcon(severity string) string {
	switch severity {
	case "Error":
		return "[E]"
	case "Warning":
		return "[W]"
	case "Information":
		return "[I]"
	case "Hint":
		return "[H]"
	default:
		return "[?]"
	}
}

func diagnosticString(d notifications.Diagnostic, key string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// formatDiagnostics renders a DiagnosticsEntry grouped by severity, the
// grouping the teacher's own formatter never actually implemented.
func formatDiagnostics(entry notifications.DiagnosticsEntry) string {
	var result strings.Builder
	result.WriteString("=== DIAGNOSTICS ===\n")

	if len(entry.Diagnostics) == 0 {
		result.WriteString("No diagnostics found")
		return result.String()
	}

	groups := map[string][]notifications.Diagnostic{}
	order := []string{"Error", "Warning", "Information", "Hint", "Unknown"}
	for _, d := range entry.Diagnostics {
		sev := diagnosticSeverity(d)
		groups[sev] = append(groups[sev], d)
	}

	for _, sev := range order {
		diags := groups[sev]
		if len(diags) == 0 {
			continue
		}
		result.WriteString(fmt.Sprintf("\n%s %s (%d):\n", diagnosticSeverityIcon(sev), strings.ToUpper(sev), len(diags)))
		for i, d := range diags {
			result.WriteString(fmt.Sprintf("%d. %s", i+1, diagnosticString(d, "message")))
			if source := diagnosticString(d, "source"); source != "" {
				result.WriteString(fmt.Sprintf(" [%s]", source))
			}
			result.WriteString("\n")
		}
	}

	return result.String()
}

// formatCodeActions renders a code-action list for display.
func formatCodeActions(actions []protocol.CodeAction) string {
	var result strings.Builder
	result.WriteString("=== CODE ACTIONS ===\n")

	if len(actions) == 0 {
		result.WriteString("No code actions available")
		return result.String()
	}

	result.WriteString(fmt.Sprintf("Found %d code actions:\n\n", len(actions)))
	for i, action := range actions {
		result.WriteString(fmt.Sprintf("%d. %s", i+1, action.Title))
		if action.Kind != nil {
			result.WriteString(fmt.Sprintf(" (%s)", string(*action.Kind)))
		}
		result.WriteString("\n")
		for _, diag := range action.Diagnostics {
			result.WriteString(fmt.Sprintf("   addresses: %s\n", diag.Message))
		}
	}
	return result.String()
}

// formatTextEdits renders a formatting edit plan for preview.
func formatTextEdits(edits []protocol.TextEdit) string {
	var result strings.Builder
	result.WriteString("=== DOCUMENT FORMATTING ===\n")

	if len(edits) == 0 {
		result.WriteString("Document is already properly formatted")
		return result.String()
	}

	result.WriteString(fmt.Sprintf("Found %d formatting edits:\n\n", len(edits)))
	for i, edit := range edits {
		startLine := edit.Range.Start.Line + 1
		endLine := edit.Range.End.Line + 1
		if startLine == endLine {
			result.WriteString(fmt.Sprintf("%d. line %d (chars %d-%d)\n", i+1, startLine, edit.Range.Start.Character, edit.Range.End.Character))
		} else {
			result.WriteString(fmt.Sprintf("%d. lines %d-%d\n", i+1, startLine, endLine))
		}
	}
	return result.String()
}

// formatWorkspaceEdit renders a rename or format plan for preview, walking
// the DocumentChanges union first and falling back to the flat Changes map.
func formatWorkspaceEdit(we *protocol.WorkspaceEdit) string {
	if we == nil {
		return "No changes needed"
	}

	var result strings.Builder
	result.WriteString("=== EDIT PREVIEW ===\n")

	totalFiles, totalEdits := 0, 0

	for _, docChange := range we.DocumentChanges {
		switch v := docChange.Value.(type) {
		case protocol.TextDocumentEdit:
			var edits []protocol.TextEdit
			for _, e := range v.Edits {
				if te, ok := e.Value.(protocol.TextEdit); ok {
					edits = append(edits, te)
				}
			}
			totalFiles++
			totalEdits += len(edits)
			result.WriteString(fmt.Sprintf("File: %s (%d edits)\n", filepath.Base(string(v.TextDocument.Uri)), len(edits)))
			for i, e := range edits {
				result.WriteString(fmt.Sprintf("   %d. line %d: %q\n", i+1, e.Range.Start.Line+1, e.NewText))
			}
		case protocol.CreateFile:
			totalFiles++
			result.WriteString(fmt.Sprintf("Create: %s\n", filepath.Base(string(v.Uri))))
		case protocol.RenameFile:
			totalFiles++
			result.WriteString(fmt.Sprintf("Rename: %s -> %s\n", filepath.Base(string(v.OldUri)), filepath.Base(string(v.NewUri))))
		case protocol.DeleteFile:
			totalFiles++
			result.WriteString(fmt.Sprintf("Delete: %s\n", filepath.Base(string(v.Uri))))
		}
	}

	for uri, edits := range we.Changes {
		totalFiles++
		totalEdits += len(edits)
		result.WriteString(fmt.Sprintf("File: %s (%d edits)\n", filepath.Base(string(uri)), len(edits)))
		for i, e := range edits {
			result.WriteString(fmt.Sprintf("   %d. line %d: %q\n", i+1, e.Range.Start.Line+1, e.NewText))
		}
	}

	if totalFiles == 0 {
		result.WriteString("No changes found")
		return result.String()
	}

	result.WriteString(fmt.Sprintf("\n%d file(s), %d edit(s) total\n", totalFiles, totalEdits))
	return result.String()
}

// formatLocations renders a Location slice (definitions, references,
// implementations) as a numbered file:line list.
func formatLocations(title string, locations []protocol.Location) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("=== %s ===\n", title))

	if len(locations) == 0 {
		result.WriteString("None found")
		return result.String()
	}

	result.WriteString(fmt.Sprintf("Found %d:\n\n", len(locations)))
	for i, loc := range locations {
		result.WriteString(fmt.Sprintf("%d. %s:%d\n", i+1, filepath.Base(string(loc.Uri)), loc.Range.Start.Line+1))
	}
	return result.String()
}

// formatDocumentSymbols renders a document's outline, recursing into
// children.
func formatDocumentSymbols(symbols []protocol.DocumentSymbol) string {
	var result strings.Builder
	result.WriteString("=== DOCUMENT SYMBOLS ===\n")
	if len(symbols) == 0 {
		result.WriteString("No symbols found")
		return result.String()
	}
	var walk func(syms []protocol.DocumentSymbol, depth int)
	walk = func(syms []protocol.DocumentSymbol, depth int) {
		for _, s := range syms {
			result.WriteString(fmt.Sprintf("%s%s %s (line %d)\n", strings.Repeat("  ", depth), symbolKindToString(s.Kind), s.Name, s.Range.Start.Line+1))
			if len(s.Children) > 0 {
				walk(s.Children, depth+1)
			}
		}
	}
	walk(symbols, 0)
	return result.String()
}

// formatWorkspaceSymbols renders workspace/symbol results.
func formatWorkspaceSymbols(symbols []protocol.WorkspaceSymbol) string {
	var result strings.Builder
	result.WriteString("=== WORKSPACE SYMBOLS ===\n")
	if len(symbols) == 0 {
		result.WriteString("No symbols found")
		return result.String()
	}
	result.WriteString(fmt.Sprintf("Found %d:\n\n", len(symbols)))
	for i, sym := range symbols {
		var uri string
		switch v := sym.Location.Value.(type) {
		case protocol.Location:
			uri = string(v.Uri)
		case protocol.LocationUriOnly:
			uri = string(v.Uri)
		}
		result.WriteString(fmt.Sprintf("%d. %s %s (%s)\n", i+1, symbolKindToString(sym.Kind), sym.Name, filepath.Base(uri)))
	}
	return result.String()
}

// formatCompletions renders a completion list.
func formatCompletions(list *protocol.CompletionList) string {
	var result strings.Builder
	result.WriteString("=== COMPLETIONS ===\n")
	if list == nil || len(list.Items) == 0 {
		result.WriteString("No completions available")
		return result.String()
	}
	result.WriteString(fmt.Sprintf("Found %d:\n\n", len(list.Items)))
	for i, item := range list.Items {
		result.WriteString(fmt.Sprintf("%d. %s", i+1, item.Label))
		if item.Detail != "" {
			result.WriteString(fmt.Sprintf(" - %s", item.Detail))
		}
		result.WriteString("\n")
	}
	return result.String()
}

// formatCallHierarchyItems renders the result of prepare_call_hierarchy.
func formatCallHierarchyItems(items []protocol.CallHierarchyItem) string {
	var result strings.Builder
	result.WriteString("=== CALL HIERARCHY ===\n")
	if len(items) == 0 {
		result.WriteString("No call hierarchy items found for this symbol")
		return result.String()
	}
	for i, item := range items {
		result.WriteString(fmt.Sprintf("%d. %s %s (%s:%d)\n", i+1, symbolKindToString(item.Kind), item.Name, filepath.Base(string(item.Uri)), item.Range.Start.Line+1))
	}
	return result.String()
}

// formatIncomingCalls renders callHierarchy/incomingCalls results.
func formatIncomingCalls(calls []protocol.CallHierarchyIncomingCall) string {
	var result strings.Builder
	result.WriteString("=== INCOMING CALLS ===\n")
	if len(calls) == 0 {
		result.WriteString("No callers found")
		return result.String()
	}
	for i, call := range calls {
		result.WriteString(fmt.Sprintf("%d. %s (%d call site(s))\n", i+1, call.From.Name, len(call.FromRanges)))
	}
	return result.String()
}

// formatOutgoingCalls renders callHierarchy/outgoingCalls results.
func formatOutgoingCalls(calls []protocol.CallHierarchyOutgoingCall) string {
	var result strings.Builder
	result.WriteString("=== OUTGOING CALLS ===\n")
	if len(calls) == 0 {
		result.WriteString("No calls found")
		return result.String()
	}
	for i, call := range calls {
		result.WriteString(fmt.Sprintf("%d. %s (%d call site(s))\n", i+1, call.To.Name, len(call.FromRanges)))
	}
	return result.String()
}

func logLevelString(level notifications.LogLevel) string {
	switch level {
	case notifications.LogError:
		return "ERROR"
	case notifications.LogWarn:
		return "WARN"
	case notifications.LogInfo:
		return "INFO"
	case notifications.LogDebug:
		return "DEBUG"
	default:
		return "UNKNOWN"
	}
}

// formatServerLogs renders window/logMessage entries.
func formatServerLogs(logs []notifications.LogEntry) string {
	var result strings.Builder
	result.WriteString("=== SERVER LOGS ===\n")
	if len(logs) == 0 {
		result.WriteString("No log entries")
		return result.String()
	}
	for _, e := range logs {
		result.WriteString(fmt.Sprintf("[%s] %s\n", logLevelString(e.Level), e.Message))
	}
	return result.String()
}

// formatServerMessages renders window/showMessage entries.
func formatServerMessages(msgs []notifications.ServerMessage) string {
	var result strings.Builder
	result.WriteString("=== SERVER MESSAGES ===\n")
	if len(msgs) == 0 {
		result.WriteString("No messages")
		return result.String()
	}
	for _, m := range msgs {
		result.WriteString(fmt.Sprintf("[%s] %s\n", logLevelString(m.Type), m.Message))
	}
	return result.String()
}
