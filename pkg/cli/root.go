/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/avaproject/ava/pkg/logging"
)

const name = "ava"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Shared flags reused across commands.
var (
	adbFlag = &cli.StringFlag{
		Name:    "adb",
		Usage:   "Path to the adb binary",
		Sources: cli.EnvVars("AVA_ADB"),
		Value:   "adb",
	}
	serialFlag = &cli.StringFlag{
		Name:    "serial",
		Aliases: []string{"s"},
		Usage:   "Device serial number (overrides $ANDROID_SERIAL)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   `Report destination path ("-" or empty means stdout)`,
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Report format: json, yaml, or table",
		Value:   "json",
	}
)

// New builds the root command with all subcommands attached.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Run video tests against every connected Android device",
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Increase verbosity (higher is more verbose)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Zero verbosity (errors only)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("AVA_LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			initLogger(cmd)
			return ctx, nil
		},
		Commands: []*cli.Command{
			runCmd(),
			testsCmd(),
			devicesCmd(),
		},
	}
}

// Execute runs the root command. It is called by main.main() and decides
// the process exit code: any error surfaced by a command exits nonzero.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := New().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initLogger configures slog after flags are parsed so --debug/--quiet
// take effect before any command executes.
func initLogger(cmd *cli.Command) {
	level := logging.ParseLevel(cmd.String("log-level"))
	if debug := debugLevel(cmd); debug != 0 {
		level = logging.LevelForDebug(debug)
	}

	logging.SetDefaultStructuredLogger(name, version, level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date)
}

// debugLevel folds the --debug counter and --quiet into the original
// tool's single verbosity value: -1 quiet, 0 normal, >0 verbose.
func debugLevel(cmd *cli.Command) int {
	if cmd.Bool("quiet") {
		return -1
	}
	return int(cmd.Int("debug"))
}
