package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via TG_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TG_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// NewLogger returns a text logger writing to w. The level is debug when
// TG_DEBUG is set and info otherwise.
func NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		return Discard()
	}
	level := slog.LevelInfo
	if DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
