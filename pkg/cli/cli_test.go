/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaproject/ava/pkg/adb"
	"github.com/avaproject/ava/pkg/harness"
	"github.com/avaproject/ava/pkg/result"
	"github.com/avaproject/ava/pkg/suite"
)

func TestNew(t *testing.T) {
	cmd := New()
	require.NotNil(t, cmd)
	assert.Equal(t, "ava", cmd.Name)

	names := make([]string, 0, len(cmd.Commands))
	for _, sub := range cmd.Commands {
		names = append(names, sub.Name)
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "tests")
	assert.Contains(t, names, "devices")
}

func TestPrintTestNames(t *testing.T) {
	var buf bytes.Buffer
	printTestNames(&buf, suite.New(adb.NewClient("adb")))
	assert.Equal(t, "* device_props\n* list_codecs\n* ping\n", buf.String())
}

func TestPrintFatalOutcome(t *testing.T) {
	t.Run("backtrace with failing sub-results", func(t *testing.T) {
		var buf bytes.Buffer
		printFatalOutcome(&buf, &harness.FatalError{
			Serial: "serial-A",
			Outcome: &result.Outcome{
				Test:      "list_codecs",
				RetCode:   result.RetCodeFatal,
				Backtrace: "adb: device offline",
				SubResults: []result.SubResult{
					{Name: "probe", RetCode: 0},
					{Name: "codec_check", RetCode: 2, Message: "encoder missing"},
				},
			},
		})

		out := buf.String()
		assert.Contains(t, out, "serial-A")
		assert.Contains(t, out, "adb: device offline")
		assert.Contains(t, out, "codec_check: retcode 2 (encoder missing)")
		assert.NotContains(t, out, "probe")
	})

	t.Run("placeholder when backtrace missing", func(t *testing.T) {
		var buf bytes.Buffer
		printFatalOutcome(&buf, &harness.FatalError{
			Serial:  "serial-B",
			Outcome: &result.Outcome{Test: "ping", RetCode: result.RetCodeFatal},
		})

		out := buf.String()
		assert.Contains(t, out, "no backtrace available")
		// No sub-results: the whole outcome is dumped as JSON.
		assert.Contains(t, out, `"retcode": -1`)
	})
}
