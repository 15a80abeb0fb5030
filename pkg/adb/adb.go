/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package adb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/avaproject/ava/pkg/config"
)

const defaultPath = "adb"

// Client wraps the adb binary for device enumeration and command execution.
// The zero value is usable; NewClient sets up the shared rate limiter that
// paces calls into the adb server when invocations run in parallel.
type Client struct {
	// Path is the adb binary path; empty means "adb" resolved via PATH.
	Path string

	// Debug echoes every executed command when positive.
	Debug int

	// DryRun short-circuits Exec with a fake success and no execution.
	// Enumeration and version probing are never dry-run.
	DryRun bool

	// Limiter paces calls into the adb server. Shared across Bind copies.
	Limiter *rate.Limiter
}

// NewClient creates a client for the given adb binary path.
func NewClient(path string) *Client {
	return &Client{
		Path: path,
		// The adb server serializes heavy traffic itself; this only guards
		// against a stampede from parallel per-device goroutines.
		Limiter: rate.NewLimiter(rate.Limit(50), 10),
	}
}

// Bind returns a copy of the client carrying the per-device debug and
// dry-run settings from cfg. The rate limiter stays shared so parallel
// invocations are paced together.
func (c *Client) Bind(cfg *config.Config) *Client {
	dup := *c
	dup.Debug = cfg.Debug
	dup.DryRun = cfg.DryRun
	return &dup
}

// ExecResult holds the output of one adb command execution.
type ExecResult struct {
	// RunID uniquely identifies this execution for log correlation.
	RunID string

	// ExitCode is the adb process exit code.
	ExitCode int

	// Stdout is the captured standard output.
	Stdout []byte

	// Stderr is the captured standard error.
	Stderr []byte

	// Duration is the wall-clock execution time.
	Duration time.Duration
}

// Exec runs an adb command against the given device serial (empty serial
// means no -s flag) and captures its output. A nonzero adb exit code is
// reported through ExecResult.ExitCode, not as an error; errors are
// reserved for failures to execute at all (missing binary, canceled
// context). In dry-run mode the command is echoed but not executed and a
// fake success is returned.
func (c *Client) Exec(ctx context.Context, serial string, args ...string) (*ExecResult, error) {
	argv := make([]string, 0, len(args)+2)
	if serial != "" {
		argv = append(argv, "-s", serial)
	}
	argv = append(argv, args...)

	runID := uuid.New().String()

	if c.Debug > 0 {
		slog.Info("executing adb command",
			"runID", runID,
			"command", c.path()+" "+strings.Join(argv, " "),
			"dryRun", c.DryRun)
	}

	if c.DryRun {
		return &ExecResult{
			RunID:  runID,
			Stdout: []byte("stdout"),
			Stderr: []byte("stderr"),
		}, nil
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.path(), argv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to execute %s: %w", c.path(), err)
		}
	}

	res := &ExecResult{
		RunID:    runID,
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	slog.Debug("adb command finished",
		"runID", runID,
		"exitCode", res.ExitCode,
		"duration", res.Duration)

	return res, nil
}

// Shell runs a shell command on the device identified by serial.
func (c *Client) Shell(ctx context.Context, serial string, args ...string) (*ExecResult, error) {
	return c.Exec(ctx, serial, append([]string{"shell"}, args...)...)
}

func (c *Client) path() string {
	if c.Path == "" {
		return defaultPath
	}
	return c.Path
}

