// Package logger sets up the structured logger of the wealth tools.
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel returns the slog level named s. ok is false for an unknown
// name, the level is then Info.
func ParseLevel(s string) (level slog.Level, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Init creates the logger and sets it as the default one.
//
// Logs are written as text to w, or as JSON when json is true. CLI output
// goes to stdout, so w is usually stderr.
func Init(w io.Writer, levelName string, json bool) *slog.Logger {
	level, ok := ParseLevel(levelName)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	l := slog.New(handler)
	slog.SetDefault(l)
	if !ok {
		l.Warn("invalid log level, defaulting to info", "level", levelName)
	}
	return l
}
