package dispatch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcplsbridge/config"
	"mcplsbridge/errs"
	"mcplsbridge/notifications"
)

func testConfig() *config.Config {
	return &config.Config{
		Workspace: config.Workspace{Roots: []string{"."}, HeuristicsMaxDepth: 4},
		LSPServers: []config.ServerSpec{
			{
				LanguageID:   "go",
				Command:      "gopls",
				FilePatterns: []string{"**/*.go"},
				Heuristics:   config.Heuristics{ProjectMarkers: []string{"go.mod"}},
			},
			{
				LanguageID:   "rust",
				Command:      "rust-analyzer",
				FilePatterns: []string{"**/*.rs"},
				Heuristics:   config.Heuristics{ProjectMarkers: []string{"Cargo.toml"}},
			},
			{
				LanguageID:   "toml-generic",
				Command:      "taplo",
				FilePatterns: []string{"**/*.toml"},
			},
		},
		LanguageExtensions: []config.LanguageExtension{
			{Extensions: []string{"go"}, LanguageID: "go"},
		},
	}
}

func TestInferLanguagePrefersExtensionMap(t *testing.T) {
	r := NewRegistry(testConfig(), notifications.NewCache(notifications.Options{}))
	lang, err := r.InferLanguage("/ws/main.go")
	require.NoError(t, err)
	assert.Equal(t, "go", lang)
}

func TestInferLanguageFallsBackToFilePatterns(t *testing.T) {
	r := NewRegistry(testConfig(), notifications.NewCache(notifications.Options{}))
	lang, err := r.InferLanguage("/ws/src/main.rs")
	require.NoError(t, err)
	assert.Equal(t, "rust", lang)
}

func TestInferLanguageRejectsUnmatchedFile(t *testing.T) {
	r := NewRegistry(testConfig(), notifications.NewCache(notifications.Options{}))
	_, err := r.InferLanguage("/ws/README.md")
	assert.Error(t, err)
}

func TestInferLanguageUsesHeuristicsOnOverlap(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte(""), 0o644))

	cfg := testConfig()
	// A second, generic server also claims *.toml so the only distinguishing
	// signal is the project marker.
	cfg.LSPServers = append(cfg.LSPServers, config.ServerSpec{
		LanguageID:   "rust-toml",
		Command:      "rust-analyzer",
		FilePatterns: []string{"**/*.toml"},
		Heuristics:   config.Heuristics{ProjectMarkers: []string{"Cargo.toml"}},
	})

	r := NewRegistry(cfg, notifications.NewCache(notifications.Options{}))
	lang, err := r.InferLanguage(filepath.Join(root, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "rust-toml", lang)
}

func TestInferLanguageRejectsWhenNoHeuristicsMatch(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig()
	cfg.LSPServers = append(cfg.LSPServers, config.ServerSpec{
		LanguageID:   "rust-toml",
		Command:      "rust-analyzer",
		FilePatterns: []string{"**/*.toml"},
		Heuristics:   config.Heuristics{ProjectMarkers: []string{"Cargo.toml"}},
	})

	r := NewRegistry(cfg, notifications.NewCache(notifications.Options{}))
	_, err := r.InferLanguage(filepath.Join(root, "config.toml"))
	assert.True(t, errs.Of(err, errs.HeuristicsReject))
}

func TestResolveSpecPropagatesHeuristicsChoiceNotJustLanguageID(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "setup.py"), []byte(""), 0o644))

	cfg := &config.Config{
		Workspace: config.Workspace{HeuristicsMaxDepth: 4},
		LSPServers: []config.ServerSpec{
			{
				LanguageID:   "python",
				Command:      "pylsp",
				FilePatterns: []string{"**/*.py"},
				Heuristics:   config.Heuristics{ProjectMarkers: []string{"pyproject.toml"}},
			},
			{
				LanguageID:   "python",
				Command:      "jedi-language-server",
				FilePatterns: []string{"**/*.py"},
				Heuristics:   config.Heuristics{ProjectMarkers: []string{"setup.py"}},
			},
		},
	}

	r := NewRegistry(cfg, notifications.NewCache(notifications.Options{}))
	spec, err := r.resolveSpec(filepath.Join(root, "main.py"))
	require.NoError(t, err)
	assert.Equal(t, "jedi-language-server", spec.Command)
}

func TestDispatchLanguageRejectsUnconfiguredLanguage(t *testing.T) {
	r := NewRegistry(testConfig(), notifications.NewCache(notifications.Options{}))
	_, err := r.DispatchLanguage(nil, "haskell")
	assert.Error(t, err)
}

func TestEntriesEmptyInitially(t *testing.T) {
	r := NewRegistry(testConfig(), notifications.NewCache(notifications.Options{}))
	assert.Empty(t, r.Entries())
}
