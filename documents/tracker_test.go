package documents

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEnsureOpenReadsFileOnce(t *testing.T) {
	path := writeTempFile(t, "a.go", "package main\n")
	tr := NewTracker()

	state, opened, err := tr.EnsureOpen(path)
	assert.NoError(t, err)
	assert.True(t, opened)
	assert.Equal(t, int32(1), state.Version)
	assert.Equal(t, "go", state.LanguageID)

	_, openedAgain, err := tr.EnsureOpen(path)
	assert.NoError(t, err)
	assert.False(t, openedAgain)
}

func TestEnsureOpenMissingFile(t *testing.T) {
	tr := NewTracker()
	_, _, err := tr.EnsureOpen("/does/not/exist.go")
	assert.Error(t, err)
}

func TestDidChangeIncrementsVersion(t *testing.T) {
	path := writeTempFile(t, "a.go", "v1")
	tr := NewTracker()
	tr.EnsureOpen(path)

	v, err := tr.DidChange(path, "v2")
	assert.NoError(t, err)
	assert.Equal(t, int32(2), v)

	state, _ := tr.Get(path)
	assert.Equal(t, "v2", state.Content)
}

func TestDidCloseRemovesDocument(t *testing.T) {
	path := writeTempFile(t, "a.go", "content")
	tr := NewTracker()
	tr.EnsureOpen(path)

	uri, ok := tr.DidClose(path)
	assert.True(t, ok)
	assert.Contains(t, uri, "file://")
	assert.False(t, tr.IsOpen(path))
}

func TestCloseAllReturnsAllURIs(t *testing.T) {
	a := writeTempFile(t, "a.go", "a")
	b := writeTempFile(t, "b.go", "b")
	tr := NewTracker()
	tr.EnsureOpen(a)
	tr.EnsureOpen(b)

	uris := tr.CloseAll()
	assert.Len(t, uris, 2)
	assert.Equal(t, 0, tr.Len())
}

func TestDetectLanguageIDKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "rust", DetectLanguageID("/a/b/main.rs"))
	assert.Equal(t, "python", DetectLanguageID("script.py"))
	assert.Equal(t, "plaintext", DetectLanguageID("README"))
}
