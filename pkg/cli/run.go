/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/avaproject/ava/pkg/adb"
	"github.com/avaproject/ava/pkg/config"
	"github.com/avaproject/ava/pkg/errors"
	"github.com/avaproject/ava/pkg/harness"
	"github.com/avaproject/ava/pkg/serializer"
	"github.com/avaproject/ava/pkg/suite"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Run a test against every connected device",
		ArgsUsage:             "[input-file ...]",
		Description: `Run a named test against every connected Android device.

One configuration is built per discovered device; the test runs once per
configuration and the per-device outcomes are aggregated into a single
report, serialized to --output in --format.

# Failure Semantics

A test outcome with retcode -1 is fatal: the run stops immediately, the
outcome's backtrace and failing nested results are printed, and ava exits
nonzero. Any other nonzero retcode is a soft failure recorded for that
device only; the run continues and exits 0 unless --fail-on-error is set.

Zero connected devices is not an error: the run completes with an empty
report and exit code 0.

# Examples

Run the codec inventory test on all devices:
  ava run --test list_codecs

Run against one device, writing a YAML report:
  ava run -t device_props -s emulator-5554 -o report.yaml -f yaml

Validate the pipeline without touching devices:
  ava run -t list_codecs --dry-run

Fail the command when any device reports a soft failure (CI):
  ava run -t ping --fail-on-error`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "test",
				Aliases: []string{"t"},
				Usage:   "Name of the test to run (see `ava tests`)",
			},
			&cli.StringFlag{
				Name:  "encoder",
				Usage: "Encoder name tests should target",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Enumerate devices and build configs, but skip test side effects",
			},
			&cli.IntFlag{
				Name:  "parallel",
				Usage: "Maximum concurrent device invocations (1 = sequential)",
				Value: 1,
			},
			&cli.DurationFlag{
				Name:  "device-timeout",
				Usage: "Per-device invocation time limit (0 = none); expiry is a soft failure",
			},
			&cli.BoolFlag{
				Name:  "fail-on-error",
				Usage: "Exit with non-zero status if any device reports a soft failure",
			},
			adbFlag,
			serialFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return errors.Newf(errors.ErrCodeInvalidRequest,
					"unknown output format %q (supported: %s)",
					cmd.String("format"), strings.Join(serializer.SupportedFormats(), ", "))
			}

			debug := debugLevel(cmd)
			client := adb.NewClient(cmd.String("adb"))
			client.Debug = debug

			if err := client.CheckVersion(ctx); err != nil {
				slog.Warn("adb version check failed", "error", err)
			}

			reg := suite.New(client)
			testName := cmd.String("test")
			if testName == "" {
				slog.Info("no test selected, nothing to run",
					"available", strings.Join(reg.Names(), ", "))
				return nil
			}

			filter := adb.ResolveSerial(cmd.String("serial"))
			serials, err := client.Devices(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to enumerate devices: %w", err)
			}

			slog.Info("discovered devices", "count", len(serials), "filter", filter)

			opts := config.Options{
				Debug:         debug,
				DryRun:        cmd.Bool("dry-run"),
				Serial:        filter,
				Encoder:       cmd.String("encoder"),
				Test:          testName,
				InFiles:       cmd.Args().Slice(),
				OutFile:       cmd.String("output"),
				DeviceTimeout: cmd.Duration("device-timeout"),
			}

			writer, err := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			if err != nil {
				return err
			}

			runner := &harness.Runner{
				Registry:   reg,
				Serializer: writer,
				Version:    version,
				Parallel:   int(cmd.Int("parallel")),
			}

			report, err := runner.Run(ctx, testName, opts, serials)
			if err != nil {
				var fatal *harness.FatalError
				if stderrors.As(err, &fatal) {
					printFatalOutcome(os.Stderr, fatal)
				}
				return err
			}

			slog.Info("run completed",
				"test", testName,
				"passed", report.Summary.Passed,
				"failed", report.Summary.Failed,
				"status", report.Summary.Status,
				"duration", report.Summary.Duration)

			if cmd.Bool("fail-on-error") && report.Summary.Failed > 0 {
				return fmt.Errorf("test %q failed on %d of %d device(s)",
					testName, report.Summary.Failed, report.Summary.Total)
			}
			return nil
		},
	}
}

// printFatalOutcome prints a fatal outcome's diagnostic: the backtrace (or
// a placeholder), then each failing nested sub-result, or the whole
// outcome when no nested results exist.
func printFatalOutcome(w io.Writer, fatal *harness.FatalError) {
	backtrace := fatal.Outcome.Backtrace
	if backtrace == "" {
		backtrace = "no backtrace available"
	}
	fmt.Fprintf(w, "fatal outcome on device %s:\n%s\n", fatal.Serial, backtrace)

	failed := fatal.Outcome.FailedSubResults()
	if len(failed) == 0 {
		if data, err := serializer.Encode(serializer.FormatJSON, fatal.Outcome); err == nil {
			w.Write(data)
		}
		return
	}
	for _, sub := range failed {
		if sub.Message != "" {
			fmt.Fprintf(w, "%s: retcode %d (%s)\n", sub.Name, sub.RetCode, sub.Message)
		} else {
			fmt.Fprintf(w, "%s: retcode %d\n", sub.Name, sub.RetCode)
		}
	}
}
