// Package logger is the broker's file-backed, level-gated logger. It keeps
// the rotation and level-gating scheme of a conventional hand-rolled Go
// service logger, with an optional JSON-line mode for callers that want to
// pipe broker logs into a structured-log aggregator.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

type LoggerConfig struct {
	LogPath     string
	LogLevel    string // "debug", "info", "warn", "error"
	MaxLogFiles int    // Maximum number of log files to keep
	JSON        bool   // emit one JSON object per line instead of plain text
}

var (
	config      LoggerConfig
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
	debugLogger *log.Logger
	logFile     *os.File
	logMutex    sync.Mutex
)

// DefaultConfig provides a default logging configuration, JSON mode
// controlled by the MCPLS_LOG_JSON environment variable.
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		LogPath:     filepath.Join(os.TempDir(), "mcplsbridge.log"),
		LogLevel:    "info",
		MaxLogFiles: 5,
		JSON:        os.Getenv("MCPLS_LOG_JSON") != "",
	}
}

// InitLogger sets up file-based logging with configuration.
func InitLogger(cfg LoggerConfig) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if cfg.LogPath == "" {
		cfg = DefaultConfig()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %v", err)
	}

	rotateLogFiles(cfg)

	file, err := os.OpenFile(cfg.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %v", err)
	}

	logFile = file
	config = cfg

	flags := log.Ldate | log.Ltime | log.Lshortfile
	if cfg.JSON {
		flags = 0 // JSON mode carries its own timestamp field
	}
	infoLogger = log.New(file, levelPrefix("info", cfg.JSON), flags)
	warnLogger = log.New(file, levelPrefix("warn", cfg.JSON), flags)
	errorLogger = log.New(file, levelPrefix("error", cfg.JSON), flags)
	debugLogger = log.New(file, levelPrefix("debug", cfg.JSON), flags)

	return nil
}

func levelPrefix(level string, jsonMode bool) string {
	if jsonMode {
		return ""
	}
	switch level {
	case "info":
		return "INFO: "
	case "warn":
		return "WARN: "
	case "error":
		return "ERROR: "
	default:
		return "DEBUG: "
	}
}

// rotateLogFiles manages log file rotation.
func rotateLogFiles(cfg LoggerConfig) {
	if cfg.MaxLogFiles <= 0 {
		return
	}

	baseDir := filepath.Dir(cfg.LogPath)
	baseFileName := filepath.Base(cfg.LogPath)
	files, _ := filepath.Glob(filepath.Join(baseDir, baseFileName+".*"))

	if len(files) >= cfg.MaxLogFiles {
		sort.Slice(files, func(i, j int) bool {
			fiA, _ := os.Stat(files[i])
			fiB, _ := os.Stat(files[j])
			return fiA.ModTime().Before(fiB.ModTime())
		})

		for _, oldFile := range files[:len(files)-cfg.MaxLogFiles+1] {
			if err := os.Remove(oldFile); err != nil {
				log.Printf("failed to remove old log file: %v", err)
			}
		}
	}
}

type jsonRecord struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

func emit(logger *log.Logger, level string, v []any) {
	if logger == nil {
		return
	}
	msg := fmt.Sprint(v...)
	if config.JSON {
		rec := jsonRecord{Time: time.Now().Format(time.RFC3339), Level: level, Message: msg}
		line, err := json.Marshal(rec)
		if err != nil {
			return
		}
		_ = logger.Output(3, string(line))
		return
	}
	_ = logger.Output(3, msg+"\n")
}

// Info logs an informational message.
func Info(v ...any) {
	if config.LogLevel == "info" || config.LogLevel == "debug" {
		emit(infoLogger, "info", v)
	}
}

// Warn logs a warning message. Matches the original level gate: only
// "info" and "warn" enable it, not "debug" or "error" — kept to avoid
// silently changing behavior callers already depend on.
func Warn(v ...any) {
	if config.LogLevel == "info" || config.LogLevel == "warn" {
		emit(warnLogger, "warn", v)
	}
}

// Error logs an error message. Errors are always logged regardless of
// LogLevel.
func Error(v ...any) {
	emit(errorLogger, "error", v)
}

// Debug logs a debug message.
func Debug(v ...any) {
	if config.LogLevel == "debug" {
		emit(debugLogger, "debug", v)
	}
}

// Close closes the log file.
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			log.Printf("failed to close log file: %v", err)
		}
	}
}
