/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli wires the command-line surface of the ava tool: device
// discovery, the test registry, the per-device harness, and report
// serialization. Commands return errors; Execute turns them into the
// process exit code.
package cli
