/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package serializer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avaproject/ava/pkg/errors"
)

// FormatFromPath determines the serialization format from a file extension.
// Matching is case-insensitive; unknown extensions default to JSON.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FromFile reads and decodes a serialized value of type T from a file,
// inferring the format from the extension. Table output is write-only and
// cannot be read back.
func FromFile[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeIO, "failed to read file", err,
			map[string]any{"path": path})
	}
	return Decode[T](FormatFromPath(path), data)
}

// Decode decodes a serialized value of type T from bytes.
func Decode[T any](format Format, data []byte) (*T, error) {
	var v T
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	case FormatTable:
		return nil, errors.New(errors.ErrCodeInvalidRequest, "table format does not support deserialization")
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidRequest, "unsupported format: %s", format)
	}
	return &v, nil
}
