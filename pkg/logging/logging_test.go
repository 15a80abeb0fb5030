/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{"  info  ", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestLevelForDebug(t *testing.T) {
	assert.Equal(t, slog.LevelError, LevelForDebug(-1))
	assert.Equal(t, slog.LevelInfo, LevelForDebug(0))
	assert.Equal(t, slog.LevelDebug, LevelForDebug(1))
	assert.Equal(t, slog.LevelDebug, LevelForDebug(3))
}

func TestSetDefaultStructuredLoggerWithWriter(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	SetDefaultStructuredLoggerWithWriter("ava", "test", slog.LevelInfo, &buf)

	slog.Debug("hidden")
	slog.Info("visible", "serial", "emulator-5554")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "app=ava")
	assert.Contains(t, out, "serial=emulator-5554")
}
