package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"mcplsbridge/bridge"
	"mcplsbridge/config"
	"mcplsbridge/directories"
	"mcplsbridge/dispatch"
	"mcplsbridge/logger"
	"mcplsbridge/mcpserver"
	"mcplsbridge/notifications"
)

var (
	configPath string
	logLevel   string
	logJSON    bool
	version    = "0.1.0"
)

func main() {
	root := &cobra.Command{
		Use:     "mcplsbridge",
		Short:   "Bridge language servers to MCP tools",
		Version: version,
		RunE:    run,
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "Path to mcpls.toml (default: discovered via $MCPLS_CONFIG, ./mcpls.toml, or the platform config dir)")
	root.Flags().StringVarP(&logLevel, "log-level", "l", "", "Log level: debug, info, warn, error")
	root.Flags().BoolVar(&logJSON, "log-json", false, "Emit one JSON object per log line")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := initLogging(); err != nil {
		return err
	}
	defer logger.Close()

	cfg, used, err := config.Discover(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if used != "" {
		logger.Info("loaded configuration from", used)
	} else {
		logger.Info("no mcpls.toml found, using built-in defaults")
	}

	cache := notifications.NewCache(notifications.Options{})
	registry := dispatch.NewRegistry(cfg, cache)
	translator := bridge.NewTranslator(registry, cfg.Workspace.Roots)

	mcpServer := mcpserver.SetupMCPServer(translator)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down, draining in-flight LSP clients...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		registry.CloseAll(shutdownCtx)
		os.Exit(0)
	}()

	logger.Info("starting mcplsbridge", "version", version)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("MCP server error", err)
		return err
	}
	return nil
}

// initLogging resolves the log file path under the platform log directory
// and applies level/format overrides from flags or environment variables,
// in that precedence order.
func initLogging() error {
	dirResolver := directories.NewDirectoryResolver("mcplsbridge", directories.DefaultUserProvider{}, directories.DefaultEnvProvider{}, true)

	logCfg := logger.DefaultConfig()
	if logDir, err := dirResolver.GetLogDirectory(); err == nil {
		logCfg.LogPath = filepath.Join(logDir, "mcplsbridge.log")
	}
	if env := os.Getenv("MCPLS_LOG"); env != "" {
		logCfg.LogLevel = env
	}
	if logLevel != "" {
		logCfg.LogLevel = logLevel
	}
	if os.Getenv("MCPLS_LOG_JSON") == "1" || logJSON {
		logCfg.JSON = true
	}

	return logger.InitLogger(logCfg)
}
