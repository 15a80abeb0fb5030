/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package logging configures the process-wide structured logger.
//
// The CLI root calls SetDefaultStructuredLogger exactly once before any
// command executes; everything else in the module uses the stdlib log/slog
// default logger with key-value pairs. Log output always goes to stderr so
// that stdout remains reserved for serialized reports.
//
// Verbosity follows the original tool's convention: the -d/--debug counter
// raises verbosity and --quiet suppresses everything below error level.
// LevelForDebug performs that mapping.
package logging
