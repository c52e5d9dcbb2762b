package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/todo/internal/config"
)

const logPrefix = "todo"

// newLogger opens the configured log file and returns a logger writing to it
// with the function that closes it. The terminal belongs to the UI, so an
// empty log_file discards output instead of falling back to stderr.
func newLogger(cfg config.Config) (*log.Logger, func() error, error) {
	var out io.Writer = io.Discard
	closeFn := func() error { return nil }

	if path := strings.TrimSpace(cfg.LogFile); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = file
		closeFn = file.Close
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           parseLogLevel(cfg.LogLevel),
		Formatter:       parseLogFormatter(cfg.LogFormat),
		ReportTimestamp: true,
		Prefix:          logPrefix,
	})
	return logger, closeFn, nil
}

// parseLogLevel maps a config level name to a charmbracelet/log Level.
func parseLogLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// parseLogFormatter maps a config format name to a charmbracelet/log Formatter.
func parseLogFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
