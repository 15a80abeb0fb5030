/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package harness

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avaproject/ava/pkg/config"
	"github.com/avaproject/ava/pkg/errors"
	"github.com/avaproject/ava/pkg/registry"
	"github.com/avaproject/ava/pkg/result"
	"github.com/avaproject/ava/pkg/serializer"
)

// Runner orchestrates one test across all discovered devices: it builds a
// config per device, invokes the test once per config, and aggregates the
// outcomes into a Report.
type Runner struct {
	// Registry maps test names to callables. Required.
	Registry *registry.Registry

	// Serializer receives the report on non-fatal completion. If nil, a
	// stdout JSON serializer is used.
	Serializer serializer.Serializer

	// Version is the tool version stamped into report headers.
	Version string

	// Parallel is the maximum number of concurrent device invocations.
	// Values below 2 select the sequential path, which is the default and
	// matches the reference behavior.
	Parallel int
}

// Run executes the named test against every serial, in enumeration order.
//
// An unknown test name fails before any device work. An empty serial set
// is not an error: the run completes with an empty report. A fatal-sentinel
// outcome (retcode -1) aborts the run with a *FatalError and no report is
// serialized; any other nonzero outcome is recorded as a soft failure and
// iteration continues.
func (r *Runner) Run(ctx context.Context, testName string, opts config.Options, serials []string) (*Report, error) {
	start := time.Now()

	fn, ok := r.Registry.Lookup(testName)
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownTest, "unknown test %q", testName)
	}

	report := NewReport(testName, r.Version)
	devicesDiscovered.Set(float64(len(serials)))

	if len(serials) == 0 {
		slog.Warn("no connected devices", "test", testName)
		report.Summary.Status = StatusEmpty
		report.Summary.Duration = time.Since(start)
		return report, r.serialize(ctx, report)
	}

	slog.Info("running test",
		"test", testName,
		"devices", len(serials),
		"dryRun", opts.DryRun,
		"parallel", r.Parallel > 1)

	var (
		outcomes []*result.Outcome
		err      error
	)
	if r.Parallel > 1 {
		outcomes, err = r.invokeParallel(ctx, fn, testName, opts, serials)
	} else {
		outcomes, err = r.invokeSequential(ctx, fn, testName, opts, serials)
	}
	if err != nil {
		runsTotal.WithLabelValues("fatal").Inc()
		return nil, err
	}

	report.Outcomes = outcomes
	for _, out := range outcomes {
		if out.Failed() {
			report.Summary.Failed++
		} else {
			report.Summary.Passed++
		}
	}
	report.Summary.Total = len(outcomes)
	if report.Summary.Failed > 0 {
		report.Summary.Status = StatusFail
	} else {
		report.Summary.Status = StatusPass
	}
	report.Summary.Duration = time.Since(start)

	runDuration.Observe(report.Summary.Duration.Seconds())
	if report.Summary.Failed > 0 {
		runsTotal.WithLabelValues("fail").Inc()
	} else {
		runsTotal.WithLabelValues("pass").Inc()
	}

	slog.Debug("run completed",
		"test", testName,
		"passed", report.Summary.Passed,
		"failed", report.Summary.Failed,
		"status", report.Summary.Status,
		"duration", report.Summary.Duration)

	return report, r.serialize(ctx, report)
}

// invokeSequential processes devices one at a time in enumeration order.
// A fatal outcome on device i returns before device i+1's config is built.
func (r *Runner) invokeSequential(ctx context.Context, fn registry.TestFunc, testName string, opts config.Options, serials []string) ([]*result.Outcome, error) {
	outcomes := make([]*result.Outcome, 0, len(serials))
	for _, serial := range serials {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cfg := config.Build(opts, serial)
		out := r.invokeOne(ctx, fn, testName, cfg)
		if out.Fatal() {
			return nil, &FatalError{Serial: serial, Outcome: out}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// invokeParallel fans device invocations out over an errgroup. Outcomes
// are written by index so enumeration order is preserved. A fatal outcome
// cancels the group; devices still in flight are discarded, never
// reported half-done.
func (r *Runner) invokeParallel(ctx context.Context, fn registry.TestFunc, testName string, opts config.Options, serials []string) ([]*result.Outcome, error) {
	outcomes := make([]*result.Outcome, len(serials))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.Parallel)

	for i, serial := range serials {
		i, serial := i, serial
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil
			}

			out := r.invokeOne(gctx, fn, testName, config.Build(opts, serial))
			if out.Fatal() {
				return &FatalError{Serial: serial, Outcome: out}
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// invokeOne runs the test against one device config, applying the optional
// per-device timeout. An expired timeout is coerced to a soft timeout
// outcome, never fatal.
func (r *Runner) invokeOne(ctx context.Context, fn registry.TestFunc, testName string, cfg *config.Config) *result.Outcome {
	ictx := ctx
	if cfg.DeviceTimeout > 0 {
		var cancel context.CancelFunc
		ictx, cancel = context.WithTimeout(ctx, cfg.DeviceTimeout)
		defer cancel()
	}

	start := time.Now()
	out := fn(ictx, cfg)

	switch {
	case out == nil:
		out = &result.Outcome{
			Test:      testName,
			RetCode:   1,
			Backtrace: "test returned no outcome",
		}
	case ictx.Err() == context.DeadlineExceeded && ctx.Err() == nil:
		out = result.Timeout(testName, cfg.DeviceTimeout)
	}

	out.Serial = cfg.Serial
	if out.Test == "" {
		out.Test = testName
	}
	if out.Duration == 0 {
		out.Duration = time.Since(start)
	}

	outcomesTotal.WithLabelValues(outcomeLabel(out)).Inc()

	if out.Failed() {
		slog.Warn("device outcome",
			"test", out.Test,
			"serial", out.Serial,
			"retcode", out.RetCode,
			"duration", out.Duration)
	} else {
		slog.Debug("device outcome",
			"test", out.Test,
			"serial", out.Serial,
			"retcode", out.RetCode,
			"duration", out.Duration)
	}

	return out
}

func (r *Runner) serialize(ctx context.Context, report *Report) error {
	ser := r.Serializer
	if ser == nil {
		ser = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
	if err := ser.Serialize(ctx, report); err != nil {
		return errors.Wrap(errors.ErrCodeIO, "failed to serialize report", err)
	}
	return nil
}

func outcomeLabel(out *result.Outcome) string {
	switch {
	case out.RetCode == result.RetCodeOK:
		return "pass"
	case out.RetCode == result.RetCodeFatal:
		return "fatal"
	case out.RetCode == result.RetCodeTimeout:
		return "timeout"
	default:
		return "soft_fail"
	}
}
