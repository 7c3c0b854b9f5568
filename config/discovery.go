package config

import (
	"os"
	"path/filepath"

	"mcplsbridge/directories"
)

// Discover implements the configuration file discovery order from spec.md
// §6: --config flag, $MCPLS_CONFIG, ./mcpls.toml, then the platform config
// directory. flagPath is the value of --config/-c, empty if unset. An
// absent config at every step yields Default() rather than an error.
func Discover(flagPath string) (*Config, string, error) {
	if flagPath != "" {
		cfg, err := Load(flagPath)
		return cfg, flagPath, err
	}

	if envPath := os.Getenv("MCPLS_CONFIG"); envPath != "" {
		cfg, err := Load(envPath)
		return cfg, envPath, err
	}

	if _, err := os.Stat("mcpls.toml"); err == nil {
		cfg, err := Load("mcpls.toml")
		return cfg, "mcpls.toml", err
	}

	resolver := directories.NewDirectoryResolver("mcplsbridge", directories.DefaultUserProvider{}, directories.NewDefaultEnvProvider(), false)
	if configDir, err := resolver.GetConfigDirectory(); err == nil {
		candidate := filepath.Join(configDir, "mcpls.toml")
		if _, statErr := os.Stat(candidate); statErr == nil {
			cfg, err := Load(candidate)
			return cfg, candidate, err
		}
	}

	return Default(), "", nil
}
