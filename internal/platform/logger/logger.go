// Package logger provides structured logging functionality for the
// application.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/murermader/flashcards/internal/config"
)

// logFileName is the name of the rolling application log inside the Log
// directory.
const logFileName = "flashcards.log"

// Setup initializes and configures the application's logging system based
// on the provided configuration. It creates a structured JSON logger at the
// configured level and sets it as the default logger for the application.
//
// Output goes to stderr and, when logDir is non-empty, additionally to an
// append-only rolling file at <logDir>/flashcards.log. The log directory
// must already exist (the store's EnsureDirectories creates it).
func Setup(cfg config.ServerConfig, logDir string) *slog.Logger {
	level := parseLevel(cfg.LogLevel)

	var out io.Writer = os.Stderr
	if logDir != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, logFileName),
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: level,
	})

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

// parseLevel maps a configured level name to a slog.Level. An unknown name
// falls back to info with a warning on the default logger.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		slog.Warn("invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}
