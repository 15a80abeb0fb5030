/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog.Level. Unknown names default to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelForDebug maps the CLI debug counter to a slog.Level:
// negative is quiet (errors only), zero is info, positive is debug.
func LevelForDebug(debug int) slog.Level {
	switch {
	case debug < 0:
		return slog.LevelError
	case debug == 0:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// SetDefaultStructuredLogger installs the process-wide slog logger.
// Logs go to stderr so stdout stays clean for report output.
func SetDefaultStructuredLogger(name, version string, level slog.Level) {
	SetDefaultStructuredLoggerWithWriter(name, version, level, os.Stderr)
}

// SetDefaultStructuredLoggerWithWriter installs the process-wide slog logger
// writing to w. Exposed for tests that capture log output.
func SetDefaultStructuredLoggerWithWriter(name, version string, level slog.Level, w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(
		slog.String("app", name),
		slog.String("version", version),
	)
	slog.SetDefault(logger)
}
