// Package config centralizes the handful of environment-variable knobs
// rowgraph reads at startup: log level and whether Sort should offload
// to a subprocess or run in-process. cmd/rowgraph loads a .env file (if
// present) via godotenv before reading any of these.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rowgraph/rowgraph/externalsort"
)

// LogLevel returns the level configured via ROWGRAPH_LOG_LEVEL, defaulting
// to INFO. Unknown values fall back to INFO with a warning on stderr,
// mirroring providers/observability/slog's own GetLogLevelFromEnv.
func LogLevel() slog.Level {
	level := strings.ToUpper(strings.TrimSpace(os.Getenv("ROWGRAPH_LOG_LEVEL")))
	switch level {
	case "", "INFO":
		return slog.LevelInfo
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		slog.Warn("config: unknown ROWGRAPH_LOG_LEVEL, using INFO", "value", level)
		return slog.LevelInfo
	}
}

// SortOptions returns the externalsort.Option set implied by the
// environment. ROWGRAPH_SORT_INPROCESS=1 runs Sort's protocol over an
// in-memory buffer instead of spawning the re-exec'd helper process — used
// in environments (e.g. some sandboxes) where process re-exec is
// unavailable or undesirable.
func SortOptions() []externalsort.Option {
	if inProcess, _ := strconv.ParseBool(os.Getenv("ROWGRAPH_SORT_INPROCESS")); inProcess {
		return []externalsort.Option{externalsort.WithInProcess()}
	}
	return nil
}
