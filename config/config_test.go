package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleTOML = `
[workspace]
roots = ["/ws"]
position_encodings = ["utf-8", "utf-16"]
heuristics_max_depth = 6

[[lsp_servers]]
language_id = "rust"
command = "rust-analyzer"
args = []
file_patterns = ["**/*.rs"]
timeout_seconds = 15

[lsp_servers.heuristics]
project_markers = ["Cargo.toml"]

[[language_extensions]]
extensions = ["rs"]
language_id = "rust"
`

func TestLoadParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpls.toml")
	assert.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"/ws"}, cfg.Workspace.Roots)
	assert.Equal(t, 6, cfg.Workspace.HeuristicsMaxDepth)
	assert.Len(t, cfg.LSPServers, 1)
	assert.Equal(t, "rust-analyzer", cfg.LSPServers[0].Command)
	assert.Equal(t, 15, cfg.LSPServers[0].TimeoutSeconds)
	assert.Equal(t, []string{"Cargo.toml"}, cfg.LSPServers[0].Heuristics.ProjectMarkers)
}

func TestLoadRejectsInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcpls.toml")
	assert.NoError(t, os.WriteFile(path, []byte("[invalid"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefaultAppliesFallbackDefaults(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.LSPServers)
	assert.NotEmpty(t, cfg.LanguageExtensions)
	assert.Equal(t, defaultHeuristicsMaxDepth, cfg.Workspace.HeuristicsMaxDepth)
	assert.Equal(t, []string{"utf-8", "utf-16", "utf-32"}, cfg.Workspace.PositionEncodings)
}

func TestLanguageForExtension(t *testing.T) {
	cfg := Default()
	lang, ok := cfg.LanguageForExtension("rs")
	assert.True(t, ok)
	assert.Equal(t, "rust", lang)

	_, ok = cfg.LanguageForExtension("unknownext")
	assert.False(t, ok)
}

func TestServerSpecForLanguage(t *testing.T) {
	cfg := Default()
	spec, ok := cfg.ServerSpecForLanguage("go")
	assert.True(t, ok)
	assert.Equal(t, "gopls", spec.Command)
}
