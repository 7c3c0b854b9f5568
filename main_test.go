package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcplsbridge/config"
)

func TestDiscoverFallsBackToDefaultsWhenNoConfig(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(cwd)
	require.NoError(t, os.Chdir(dir))
	os.Unsetenv("MCPLS_CONFIG")

	cfg, used, err := config.Discover("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.NotEmpty(t, cfg.LSPServers)
	assert.NotEmpty(t, cfg.Workspace.Roots)
}

func TestDiscoverExplicitPathMustExist(t *testing.T) {
	_, _, err := config.Discover("/nonexistent/mcpls.toml")
	assert.Error(t, err)
}

func TestDefaultConfigHasGoServer(t *testing.T) {
	cfg := config.Default()

	spec, ok := cfg.ServerSpecForLanguage("go")
	require.True(t, ok)
	assert.Equal(t, "gopls", spec.Command)
}
