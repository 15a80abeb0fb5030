/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer writes and reads structured report data.
//
// Three output formats are supported:
//   - JSON: indented, machine-readable (the default)
//   - YAML: human-readable
//   - Table: flattened key-value grid for terminal viewing (write-only)
//
// Writers buffer the fully encoded payload before touching the
// destination. File destinations are committed with a temp-file rename in
// the target directory, so a concurrent reader of the report path never
// observes a partial document. The "-" path (or an empty one) means
// stdout.
//
// Usage:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatJSON, "report.json")
//	if err != nil {
//		return err
//	}
//	if err := w.Serialize(ctx, report); err != nil {
//		return err
//	}
//
// FromFile reads a report back, inferring the format from the extension.
package serializer
