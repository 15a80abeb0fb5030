/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avaproject/ava/pkg/errors"
)

// Format represents the output format type.
type Format string

const (
	// FormatJSON outputs data in indented JSON.
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML.
	FormatYAML Format = "yaml"
	// FormatTable outputs data as a flattened key-value table.
	FormatTable Format = "table"
)

// StdoutPath is the destination sentinel meaning "write to stdout".
const StdoutPath = "-"

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns the list of supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// Serializer serializes a value to a configured destination.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Writer serializes values to an io.Writer or a file path. File
// destinations are committed atomically: the full payload is encoded in
// memory, written to a temp file in the target directory, and renamed into
// place, so a concurrent reader never observes a partial report.
type Writer struct {
	format Format
	out    io.Writer
	path   string
}

// NewWriter creates a Writer targeting the given io.Writer.
// If output is nil, os.Stdout is used.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, out: output}
}

// NewStdoutWriter creates a Writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return &Writer{format: format, out: os.Stdout}
}

// NewFileWriterOrStdout creates a Writer targeting the given file path.
// An empty path or the "-" sentinel targets stdout. The parent directory
// is validated eagerly so a bad destination fails before any device work.
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == StdoutPath {
		return NewStdoutWriter(format), nil
	}

	dir := filepath.Dir(trimmed)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIO, "report destination not writable", err,
			map[string]any{"path": trimmed})
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrCodeIO, "report destination parent %q is not a directory", dir)
	}

	return &Writer{format: format, path: trimmed}, nil
}

// Serialize encodes v in the configured format and commits it to the
// destination. Encoding and I/O failures are returned, never swallowed.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := Encode(w.format, v)
	if err != nil {
		return err
	}

	if w.path == "" {
		if _, err := w.out.Write(payload); err != nil {
			return errors.Wrap(errors.ErrCodeIO, "failed to write report", err)
		}
		return nil
	}

	return writeFileAtomic(w.path, payload)
}

// Encode serializes v to bytes in the given format.
func Encode(format Format, v any) ([]byte, error) {
	switch format {
	case FormatJSON:
		content, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return append(content, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTable:
		return encodeTable(v)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidRequest, "unsupported format: %s", format)
	}
}

// writeFileAtomic writes payload to path via a temp file and rename in the
// same directory.
func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeIO, "failed to open report destination", err,
			map[string]any{"path": path})
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, "failed to write report", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, "failed to write report", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, "failed to write report", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeIO, "failed to commit report", err)
	}
	return nil
}
