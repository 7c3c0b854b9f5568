package bridge

import (
	"fmt"
	"os"
	"strings"

	"github.com/myleshyson/lsprotocol-go/protocol"

	"mcplsbridge/security"
	"mcplsbridge/utils"
)

// applyWorkspaceEdit is the supplemental edit-application path described in
// §4.7A, ported from the teacher's ApplyWorkspaceEdit/ApplyTextEdits: walk
// DocumentChanges first (the form most servers prefer), then the flatter
// Changes map, validating every target path against roots before touching
// disk.
func applyWorkspaceEdit(roots []string, we *protocol.WorkspaceEdit) error {
	if we == nil {
		return nil
	}

	for _, docChange := range we.DocumentChanges {
		switch v := docChange.Value.(type) {
		case protocol.TextDocumentEdit:
			edits := make([]protocol.TextEdit, 0, len(v.Edits))
			for _, e := range v.Edits {
				if te, ok := e.Value.(protocol.TextEdit); ok {
					edits = append(edits, te)
				}
			}
			if len(edits) > 0 {
				if err := applyTextEdits(roots, string(v.TextDocument.Uri), edits); err != nil {
					return fmt.Errorf("applying document change to %s: %w", v.TextDocument.Uri, err)
				}
			}
		case protocol.CreateFile:
			path, err := security.ValidateWorkspacePath(utils.URIToFilePath(string(v.Uri)), roots)
			if err != nil {
				return fmt.Errorf("create file rejected: %w", err)
			}
			if err := os.WriteFile(path, []byte{}, 0o600); err != nil {
				return fmt.Errorf("creating file %s: %w", path, err)
			}
		case protocol.RenameFile:
			oldPath, err := security.ValidateWorkspacePath(utils.URIToFilePath(string(v.OldUri)), roots)
			if err != nil {
				return fmt.Errorf("rename source rejected: %w", err)
			}
			newPath, err := security.ValidateWorkspacePath(utils.URIToFilePath(string(v.NewUri)), roots)
			if err != nil {
				return fmt.Errorf("rename destination rejected: %w", err)
			}
			if err := os.Rename(oldPath, newPath); err != nil {
				return fmt.Errorf("renaming %s to %s: %w", oldPath, newPath, err)
			}
		case protocol.DeleteFile:
			path, err := security.ValidateWorkspacePath(utils.URIToFilePath(string(v.Uri)), roots)
			if err != nil {
				return fmt.Errorf("delete rejected: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("deleting %s: %w", path, err)
			}
		}
	}

	for uri, edits := range we.Changes {
		if err := applyTextEdits(roots, string(uri), edits); err != nil {
			return fmt.Errorf("applying edits to %s: %w", uri, err)
		}
	}

	return nil
}

// applyTextEdits reads the file at uri, splices in edits, and writes the
// result back with the original file's mode.
func applyTextEdits(roots []string, uri string, edits []protocol.TextEdit) error {
	path, err := security.ValidateWorkspacePath(utils.URIToFilePath(uri), roots)
	if err != nil {
		return fmt.Errorf("path not allowed: %w", err)
	}

	content, err := os.ReadFile(path) // #nosec G304 -- path validated above
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	modified, err := applyTextEditsToContent(string(content), edits)
	if err != nil {
		return fmt.Errorf("applying edits: %w", err)
	}

	if err := os.WriteFile(path, []byte(modified), stat.Mode()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// applyTextEditsToContent splices edits into content, line by line. Edits
// are applied in reverse position order so earlier splices don't shift the
// offsets later ones depend on. Edits whose line or character indices fall
// outside content are skipped rather than failing the whole batch.
func applyTextEditsToContent(content string, edits []protocol.TextEdit) (string, error) {
	if len(edits) == 0 {
		return content, nil
	}

	lines := strings.Split(content, "\n")

	ordered := make([]protocol.TextEdit, len(edits))
	copy(ordered, edits)
	for i := 0; i < len(ordered)-1; i++ {
		for j := i + 1; j < len(ordered); j++ {
			if ordered[i].Range.Start.Line < ordered[j].Range.Start.Line ||
				(ordered[i].Range.Start.Line == ordered[j].Range.Start.Line &&
					ordered[i].Range.Start.Character < ordered[j].Range.Start.Character) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	for _, edit := range ordered {
		startLine := int(edit.Range.Start.Line)
		startChar := int(edit.Range.Start.Character)
		endLine := int(edit.Range.End.Line)
		endChar := int(edit.Range.End.Character)

		if startLine >= len(lines) || endLine >= len(lines) {
			continue
		}

		if startLine == endLine {
			line := lines[startLine]
			if startChar > len(line) || endChar > len(line) {
				continue
			}
			lines[startLine] = line[:startChar] + edit.NewText + line[endChar:]
			continue
		}

		if startChar > len(lines[startLine]) || endChar > len(lines[endLine]) {
			continue
		}
		newLine := lines[startLine][:startChar] + edit.NewText + lines[endLine][endChar:]
		newLines := make([]string, 0, len(lines)-(endLine-startLine))
		newLines = append(newLines, lines[:startLine]...)
		newLines = append(newLines, newLine)
		if endLine+1 < len(lines) {
			newLines = append(newLines, lines[endLine+1:]...)
		}
		lines = newLines
	}

	return strings.Join(lines, "\n"), nil
}
