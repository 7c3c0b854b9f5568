// Package documents tracks the open-document state the broker maintains on
// behalf of a single LSP client, bridging MCP's stateless per-call file
// paths onto LSP's stateful textDocument/didOpen-didChange-didClose model.
package documents

import (
	"os"
	"sync"

	"mcplsbridge/errs"
	"mcplsbridge/utils"
)

// State is the tracked state of one open document.
type State struct {
	Path       string // absolute filesystem path
	URI        string
	LanguageID string
	Version    int32
	Content    string
}

// Tracker holds every document currently open against one LSP client.
// Documents remain open for the broker's lifetime by default; Tracker is
// interface-shaped indirectly (callers depend on *Tracker's methods, not
// its fields) so a future eviction policy can be layered on without
// touching call sites.
type Tracker struct {
	mu   sync.Mutex
	docs map[string]*State // keyed by absolute path
}

func NewTracker() *Tracker {
	return &Tracker{docs: make(map[string]*State)}
}

// IsOpen reports whether path is currently tracked.
func (t *Tracker) IsOpen(path string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.docs[path]
	return ok
}

// Get returns a snapshot of the tracked state for path.
func (t *Tracker) Get(path string) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.docs[path]
	if !ok {
		return State{}, false
	}
	return *s, true
}

// Len reports how many documents are currently open.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.docs)
}

// EnsureOpen reads path off disk if it is not already tracked and records
// it with version 1. It returns the resulting state and whether a fresh
// open happened (false means the document was already tracked and nothing
// was read). Callers use the bool to decide whether to send didOpen.
func (t *Tracker) EnsureOpen(path string) (State, bool, error) {
	t.mu.Lock()
	if s, ok := t.docs[path]; ok {
		snapshot := *s
		t.mu.Unlock()
		return snapshot, false, nil
	}
	t.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return State{}, false, errs.New(errs.FileNotFound, err)
	}

	s := &State{
		Path:       path,
		URI:        utils.FilePathToURI(path),
		LanguageID: DetectLanguageID(path),
		Version:    1,
		Content:    string(content),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.docs[path]; ok {
		// Another call opened it while we were reading the file; keep the
		// winner's state rather than clobbering a newer version.
		snapshot := *existing
		return snapshot, false, nil
	}
	t.docs[path] = s
	return *s, true, nil
}

// DidChange increments the document's version and replaces its content,
// returning the new version for the caller to send in didChange.
func (t *Tracker) DidChange(path, newContent string) (int32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.docs[path]
	if !ok {
		return 0, errs.Newf(errs.Internal, "did_change on untracked document %s", path)
	}
	s.Version++
	s.Content = newContent
	return s.Version, nil
}

// DidClose drops path from the tracker, returning the URI that was tracked
// so the caller can also purge the notification cache's diagnostics entry.
func (t *Tracker) DidClose(path string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.docs[path]
	if !ok {
		return "", false
	}
	delete(t.docs, path)
	return s.URI, true
}

// CloseAll drops every tracked document, returning their URIs for cache
// cleanup, used when the owning LSP client shuts down.
func (t *Tracker) CloseAll() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	uris := make([]string, 0, len(t.docs))
	for _, s := range t.docs {
		uris = append(uris, s.URI)
	}
	t.docs = make(map[string]*State)
	return uris
}
