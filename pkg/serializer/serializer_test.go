/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaproject/ava/pkg/errors"
)

type sample struct {
	Name    string         `json:"name" yaml:"name"`
	RetCode int            `json:"retcode" yaml:"retcode"`
	Files   []string       `json:"files,omitempty" yaml:"files,omitempty"`
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

func TestFormat_IsUnknown(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.False(t, FormatTable.IsUnknown())
	assert.True(t, Format("xml").IsUnknown())
	assert.True(t, Format("").IsUnknown())
}

func TestWriter_SerializeJSONToBuffer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	in := sample{Name: "ping", RetCode: 0, Files: []string{"a.mp4"}}
	require.NoError(t, w.Serialize(context.Background(), in))

	out, err := Decode[sample](FormatJSON, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestWriter_SerializeYAMLToBuffer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	in := sample{Name: "list_codecs", RetCode: 1}
	require.NoError(t, w.Serialize(context.Background(), in))

	out, err := Decode[sample](FormatYAML, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestWriter_SerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	in := sample{Name: "ping", RetCode: 0, Payload: map[string]any{"model": "Pixel"}}
	require.NoError(t, w.Serialize(context.Background(), in))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "ping")
	assert.Contains(t, out, "Payload.model")
	assert.Contains(t, out, "Pixel")
}

func TestWriter_FileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w, err := NewFileWriterOrStdout(FormatJSON, path)
	require.NoError(t, err)

	in := sample{Name: "qp_bounds", RetCode: -1, Files: []string{"a.mp4", "b.mp4"}}
	require.NoError(t, w.Serialize(context.Background(), in))

	out, err := FromFile[sample](path)
	require.NoError(t, err)
	assert.Equal(t, in, *out)

	// No temp files left behind after the atomic commit.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriter_YAMLFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	w, err := NewFileWriterOrStdout(FormatYAML, path)
	require.NoError(t, err)

	in := sample{Name: "ping", RetCode: 0}
	require.NoError(t, w.Serialize(context.Background(), in))

	out, err := FromFile[sample](path)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestNewFileWriterOrStdout_StdoutSentinels(t *testing.T) {
	for _, path := range []string{"", "-", "  "} {
		w, err := NewFileWriterOrStdout(FormatJSON, path)
		require.NoError(t, err, "path %q", path)
		assert.NotNil(t, w)
	}
}

func TestNewFileWriterOrStdout_BadDestination(t *testing.T) {
	_, err := NewFileWriterOrStdout(FormatJSON, "/nonexistent-dir-ava/report.json")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIO))
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	_, err := Encode(Format("xml"), sample{})
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestDecode_TableRejected(t *testing.T) {
	_, err := Decode[sample](FormatTable, []byte("FIELD\tVALUE\n"))
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("report.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("REPORT.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("report.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("report.out"))
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	assert.Equal(t, []string{"json", "yaml", "table"}, formats)
	for _, f := range formats {
		assert.False(t, Format(f).IsUnknown())
	}
}

func TestEncodeTable_Empty(t *testing.T) {
	out, err := Encode(FormatTable, struct{}{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "<empty>"))
}
