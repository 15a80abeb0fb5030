/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package suite provides the built-in device tests and registers them into
// a registry.
//
// Every test follows the same outcome convention: retcode 0 on success, a
// positive retcode for a per-device (soft) failure, and the fatal sentinel
// -1 with a backtrace when the harness itself cannot proceed (adb not
// executable, canceled context). Deeper encoder analysis (QP extraction,
// bitstream checks) is out of scope for the built-ins.
package suite

import (
	"context"
	"regexp"
	"strings"

	"github.com/avaproject/ava/pkg/adb"
	"github.com/avaproject/ava/pkg/config"
	"github.com/avaproject/ava/pkg/registry"
	"github.com/avaproject/ava/pkg/result"
)

// Device properties probed by the device_props test.
var defaultProps = []string{
	"ro.product.model",
	"ro.build.version.release",
	"ro.build.version.sdk",
	"ro.product.cpu.abi",
}

// Matches MediaCodec component names in dumpsys output.
var codecNameRe = regexp.MustCompile(`\b(?:OMX|c2)\.[A-Za-z0-9._-]+`)

// New builds the default registry of built-in tests backed by the given
// adb client.
func New(client *adb.Client) *registry.Registry {
	r := registry.New()
	r.Register("ping", ping(client))
	r.Register("list_codecs", listCodecs(client))
	r.Register("device_props", deviceProps(client))
	return r
}

// ping verifies the device answers a trivial shell command.
func ping(client *adb.Client) registry.TestFunc {
	return func(ctx context.Context, cfg *config.Config) *result.Outcome {
		out := &result.Outcome{Test: "ping"}

		res, err := client.Bind(cfg).Shell(ctx, cfg.Serial, "true")
		if err != nil {
			return result.Fatal("ping", err)
		}

		out.RetCode = res.ExitCode
		if res.ExitCode != 0 {
			out.Backtrace = strings.TrimSpace(string(res.Stderr))
		}
		return out
	}
}

// listCodecs inventories the device's MediaCodec components. When an
// encoder name is configured, its absence is a soft failure.
func listCodecs(client *adb.Client) registry.TestFunc {
	return func(ctx context.Context, cfg *config.Config) *result.Outcome {
		out := &result.Outcome{Test: "list_codecs"}

		res, err := client.Bind(cfg).Shell(ctx, cfg.Serial, "dumpsys", "media.codec")
		if err != nil {
			return result.Fatal("list_codecs", err)
		}
		if res.ExitCode != 0 {
			out.RetCode = res.ExitCode
			out.Backtrace = strings.TrimSpace(string(res.Stderr))
			return out
		}

		codecs := parseCodecNames(string(res.Stdout))
		out.Payload = map[string]any{"codecs": codecs}

		if cfg.Encoder != "" {
			sub := result.SubResult{Name: cfg.Encoder}
			if !contains(codecs, cfg.Encoder) {
				sub.RetCode = 1
				sub.Message = "encoder not reported by device"
				out.RetCode = 1
			}
			out.SubResults = append(out.SubResults, sub)
		}
		return out
	}
}

// deviceProps reads a fixed set of system properties, one sub-result per
// property. A missing property is a soft failure.
func deviceProps(client *adb.Client) registry.TestFunc {
	return func(ctx context.Context, cfg *config.Config) *result.Outcome {
		out := &result.Outcome{Test: "device_props"}
		bound := client.Bind(cfg)

		for _, prop := range defaultProps {
			res, err := bound.Shell(ctx, cfg.Serial, "getprop", prop)
			if err != nil {
				return result.Fatal("device_props", err)
			}

			sub := result.SubResult{Name: prop}
			value := strings.TrimSpace(string(res.Stdout))
			if res.ExitCode != 0 || value == "" {
				sub.RetCode = 1
				sub.Message = "property not set"
				out.RetCode = 1
			} else {
				sub.Data = map[string]any{"value": value}
			}
			out.SubResults = append(out.SubResults, sub)
		}
		return out
	}
}

// parseCodecNames extracts unique MediaCodec component names in their
// order of appearance.
func parseCodecNames(dump string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, 16)
	for _, name := range codecNameRe.FindAllString(dump, -1) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
