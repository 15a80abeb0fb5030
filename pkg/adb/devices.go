/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package adb

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/avaproject/ava/pkg/errors"
	"github.com/avaproject/ava/pkg/version"
)

// EnvSerial is the environment variable adb itself honors for the default
// target device.
const EnvSerial = "ANDROID_SERIAL"

// MinVersion is the oldest adb release the harness is known to work with
// (first release with stable `adb devices -l` and exec-out behavior).
var MinVersion = version.New(1, 0, 39)

var versionRe = regexp.MustCompile(`Android Debug Bridge version ([0-9][0-9.]*)`)

// ResolveSerial resolves the device-serial filter: an explicit value wins,
// otherwise $ANDROID_SERIAL, otherwise empty (meaning all devices).
func ResolveSerial(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvSerial)
}

// Devices returns the serials of currently attached devices in the stable
// order adb reports them. Devices in states other than "device" (offline,
// unauthorized) are skipped. When filter is non-empty, the result is
// narrowed to that single serial; a filter that matches no attached device
// is an error.
func (c *Client) Devices(ctx context.Context, filter string) ([]string, error) {
	// Enumeration is never dry-run: a dry run still needs the real device
	// list to validate the pipeline.
	enum := *c
	enum.DryRun = false

	res, err := enum.Exec(ctx, "", "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate devices: %w", err)
	}
	if res.ExitCode != 0 {
		return nil, errors.Wrap(errors.ErrCodeInternal, "adb devices failed",
			fmt.Errorf("exit code %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr))))
	}

	serials := parseDevices(string(res.Stdout))

	if filter == "" {
		return serials, nil
	}
	for _, s := range serials {
		if s == filter {
			return []string{filter}, nil
		}
	}
	return nil, errors.Newf(errors.ErrCodeNoDevices, "device serial %q not attached", filter)
}

// parseDevices extracts serials in "device" state from `adb devices` output.
func parseDevices(out string) []string {
	serials := make([]string, 0, 4)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != "device" {
			continue
		}
		serials = append(serials, fields[0])
	}
	return serials
}

// Version probes and parses the adb version banner.
func (c *Client) Version(ctx context.Context) (version.Version, error) {
	probe := *c
	probe.DryRun = false

	res, err := probe.Exec(ctx, "", "version")
	if err != nil {
		return version.Version{}, fmt.Errorf("failed to probe adb version: %w", err)
	}

	m := versionRe.FindStringSubmatch(string(res.Stdout))
	if m == nil {
		return version.Version{}, fmt.Errorf("unrecognized adb version output: %q", strings.TrimSpace(string(res.Stdout)))
	}
	return version.Parse(m[1])
}

// CheckVersion verifies the adb binary meets MinVersion.
func (c *Client) CheckVersion(ctx context.Context) error {
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	if !v.AtLeast(MinVersion) {
		return errors.Newf(errors.ErrCodeInvalidRequest,
			"adb %s is older than the minimum supported %s", v, MinVersion)
	}
	return nil
}
