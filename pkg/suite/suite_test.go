/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package suite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaproject/ava/pkg/adb"
	"github.com/avaproject/ava/pkg/config"
	"github.com/avaproject/ava/pkg/result"
)

// writeStub creates an executable script that stands in for the adb binary.
func writeStub(t *testing.T, script string) *adb.Client {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adb")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return adb.NewClient(path)
}

func run(t *testing.T, client *adb.Client, test string, cfg *config.Config) *result.Outcome {
	t.Helper()
	fn, ok := New(client).Lookup(test)
	require.True(t, ok)
	return fn(context.Background(), cfg)
}

func TestNew_RegistersBuiltins(t *testing.T) {
	r := New(adb.NewClient("adb"))
	assert.Equal(t, []string{"device_props", "list_codecs", "ping"}, r.Names())
}

func TestPing(t *testing.T) {
	cfg := config.Build(config.Options{}, "serial-A")

	t.Run("success", func(t *testing.T) {
		out := run(t, writeStub(t, `exit 0`), "ping", cfg)
		assert.Equal(t, result.RetCodeOK, out.RetCode)
	})

	t.Run("soft failure carries stderr", func(t *testing.T) {
		out := run(t, writeStub(t, `echo "device offline" >&2; exit 5`), "ping", cfg)
		assert.Equal(t, 5, out.RetCode)
		assert.Equal(t, "device offline", out.Backtrace)
		assert.False(t, out.Fatal())
	})

	t.Run("missing adb is fatal", func(t *testing.T) {
		client := adb.NewClient("/nonexistent/adb")
		out := run(t, client, "ping", cfg)
		assert.True(t, out.Fatal())
		assert.NotEmpty(t, out.Backtrace)
	})

	t.Run("dry run succeeds without executing", func(t *testing.T) {
		client := adb.NewClient("/nonexistent/adb")
		dryCfg := config.Build(config.Options{DryRun: true}, "serial-A")
		out := run(t, client, "ping", dryCfg)
		assert.Equal(t, result.RetCodeOK, out.RetCode)
	})
}

const codecDump = `
  Codec c2.android.avc.encoder: aliases []
  Codec c2.android.avc.decoder
  Codec c2.android.hevc.encoder
  Codec OMX.google.h264.decoder (legacy)
  Codec c2.android.avc.encoder (duplicate listing)
`

func TestParseCodecNames(t *testing.T) {
	names := parseCodecNames(codecDump)
	assert.Equal(t, []string{
		"c2.android.avc.encoder",
		"c2.android.avc.decoder",
		"c2.android.hevc.encoder",
		"OMX.google.h264.decoder",
	}, names)

	assert.Empty(t, parseCodecNames("no codecs here"))
}

func TestListCodecs(t *testing.T) {
	client := writeStub(t, `printf '%s\n' "Codec c2.android.avc.encoder" "Codec c2.android.hevc.encoder"`)

	t.Run("inventory in payload", func(t *testing.T) {
		out := run(t, client, "list_codecs", config.Build(config.Options{}, "serial-A"))
		require.Equal(t, result.RetCodeOK, out.RetCode)
		assert.Equal(t,
			[]string{"c2.android.avc.encoder", "c2.android.hevc.encoder"},
			out.Payload["codecs"])
	})

	t.Run("configured encoder present", func(t *testing.T) {
		cfg := config.Build(config.Options{Encoder: "c2.android.hevc.encoder"}, "serial-A")
		out := run(t, client, "list_codecs", cfg)
		assert.Equal(t, result.RetCodeOK, out.RetCode)
		require.Len(t, out.SubResults, 1)
		assert.Equal(t, result.RetCodeOK, out.SubResults[0].RetCode)
	})

	t.Run("configured encoder missing is soft", func(t *testing.T) {
		cfg := config.Build(config.Options{Encoder: "c2.qti.hevc.encoder"}, "serial-A")
		out := run(t, client, "list_codecs", cfg)
		assert.Equal(t, 1, out.RetCode)
		assert.False(t, out.Fatal())
		require.Len(t, out.SubResults, 1)
		assert.Equal(t, 1, out.SubResults[0].RetCode)
		assert.Equal(t, "c2.qti.hevc.encoder", out.SubResults[0].Name)
	})

	t.Run("nonzero dumpsys exit is soft", func(t *testing.T) {
		failing := writeStub(t, `echo "cannot connect" >&2; exit 20`)
		out := run(t, failing, "list_codecs", config.Build(config.Options{}, "serial-A"))
		assert.Equal(t, 20, out.RetCode)
		assert.Equal(t, "cannot connect", out.Backtrace)
	})
}

func TestDeviceProps(t *testing.T) {
	// The stub answers getprop for three of the four probed properties;
	// $5 is the property name in "-s serial shell getprop <name>".
	client := writeStub(t, `case "$5" in
ro.product.model) echo "Pixel 8" ;;
ro.build.version.release) echo "14" ;;
ro.build.version.sdk) echo "34" ;;
*) echo "" ;;
esac`)

	out := run(t, client, "device_props", config.Build(config.Options{}, "serial-A"))

	require.Len(t, out.SubResults, len(defaultProps))
	assert.Equal(t, 1, out.RetCode, "a missing property is a soft failure")

	byName := map[string]result.SubResult{}
	for _, sub := range out.SubResults {
		byName[sub.Name] = sub
	}
	assert.Equal(t, "Pixel 8", byName["ro.product.model"].Data["value"])
	assert.Equal(t, "34", byName["ro.build.version.sdk"].Data["value"])
	assert.Equal(t, 1, byName["ro.product.cpu.abi"].RetCode)

	failed := out.FailedSubResults()
	require.Len(t, failed, 1)
	assert.Equal(t, "ro.product.cpu.abi", failed[0].Name)
}
