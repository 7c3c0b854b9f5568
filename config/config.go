// Package config loads the broker's TOML configuration file: workspace
// roots, the LSP server registry, and the extension-to-language map used to
// dispatch files, falling back to built-in defaults for a bundled set of
// language ids when no file is found.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"mcplsbridge/errs"
)

// Heuristics configures the project-marker walk used to disambiguate
// specs whose file_patterns overlap (e.g. two specs both claiming *.toml).
type Heuristics struct {
	ProjectMarkers []string `toml:"project_markers"`
}

// ServerSpec describes one configured LSP server.
type ServerSpec struct {
	LanguageID            string         `toml:"language_id"`
	Command               string         `toml:"command"`
	Args                  []string       `toml:"args"`
	Env                   map[string]string `toml:"env"`
	FilePatterns          []string       `toml:"file_patterns"`
	TimeoutSeconds        int            `toml:"timeout_seconds"`
	InitializationOptions map[string]any `toml:"initialization_options"`
	Heuristics            Heuristics     `toml:"heuristics"`
}

// LanguageExtension maps a set of file extensions onto a language id,
// consulted before FilePatterns per the extension-map-wins decision
// recorded in DESIGN.md.
type LanguageExtension struct {
	Extensions []string `toml:"extensions"`
	LanguageID string   `toml:"language_id"`
}

// Workspace is the [workspace] table.
type Workspace struct {
	Roots              []string `toml:"roots"`
	PositionEncodings  []string `toml:"position_encodings"`
	HeuristicsMaxDepth int      `toml:"heuristics_max_depth"`
}

// Config is the fully decoded mcpls.toml.
type Config struct {
	Workspace          Workspace           `toml:"workspace"`
	LSPServers         []ServerSpec        `toml:"lsp_servers"`
	LanguageExtensions []LanguageExtension `toml:"language_extensions"`
}

const defaultHeuristicsMaxDepth = 4

// Load reads and decodes the TOML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.New(errs.ConfigInvalid, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errs.New(errs.ConfigInvalid, fmt.Errorf("parsing %s: %w", path, err))
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the built-in configuration used when no config file is
// found on the discovery path: 20 language defaults, one workspace root
// (the current directory).
func Default() *Config {
	cfg := &Config{
		Workspace: Workspace{
			Roots: []string{"."},
		},
		LSPServers:         defaultServerSpecs(),
		LanguageExtensions: defaultLanguageExtensions(),
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Workspace.HeuristicsMaxDepth <= 0 {
		cfg.Workspace.HeuristicsMaxDepth = defaultHeuristicsMaxDepth
	}
	if len(cfg.Workspace.PositionEncodings) == 0 {
		cfg.Workspace.PositionEncodings = []string{"utf-8", "utf-16", "utf-32"}
	}
	for i := range cfg.LSPServers {
		if cfg.LSPServers[i].TimeoutSeconds <= 0 {
			cfg.LSPServers[i].TimeoutSeconds = 30
		}
	}
}

// ServerSpecForLanguage finds the configured spec whose LanguageID matches.
func (c *Config) ServerSpecForLanguage(languageID string) (*ServerSpec, bool) {
	for i := range c.LSPServers {
		if c.LSPServers[i].LanguageID == languageID {
			return &c.LSPServers[i], true
		}
	}
	return nil, false
}

// LanguageForExtension consults the extension map, returning the language
// id that claims ext (without leading dot), if any.
func (c *Config) LanguageForExtension(ext string) (string, bool) {
	for _, le := range c.LanguageExtensions {
		for _, e := range le.Extensions {
			if e == ext {
				return le.LanguageID, true
			}
		}
	}
	return "", false
}
