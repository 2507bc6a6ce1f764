package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

// Fields represents structured logging fields.
type Fields map[string]any

// ParseLevel converts a level name from configuration into a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s: %w", level, ErrInvalidConfig)
	}
}

// SetupLogger configures the global logger with appropriate settings.
func SetupLogger(level slog.Level, format string) error {
	return SetupLoggerTo(os.Stderr, level, format)
}

// SetupLoggerTo is SetupLogger with an explicit destination.
func SetupLoggerTo(w io.Writer, level slog.Level, format string) error {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "console", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s: %w", format, ErrInvalidConfig)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// LogError logs msg at error level with err attached.
func LogError(err error, msg string, fields Fields) {
	logFields(slog.LevelError, msg, append([]slog.Attr{slog.String("error", err.Error())}, fields.attrs()...))
}

// LogInfo logs msg at info level.
func LogInfo(msg string, fields Fields) {
	logFields(slog.LevelInfo, msg, fields.attrs())
}

// LogDebug logs msg at debug level.
func LogDebug(msg string, fields Fields) {
	logFields(slog.LevelDebug, msg, fields.attrs())
}

func logFields(level slog.Level, msg string, attrs []slog.Attr) {
	slog.LogAttrs(context.Background(), level, msg, attrs...)
}

// attrs returns the fields as slog attributes sorted by key.
func (f Fields) attrs() []slog.Attr {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, f[k]))
	}
	return out
}
