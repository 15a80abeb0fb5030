/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package adb wraps the adb binary for device enumeration and command
// execution.
//
// The harness core only consumes this package's output: Devices supplies
// the ordered, stable snapshot of attached serials for one run, and Exec
// runs a single adb invocation with captured output and a unique run ID
// for log correlation.
//
// Dry-run semantics match the original tool: Exec echoes the command and
// returns a fake success without touching the device, while enumeration
// and version probing always execute for real so a dry run still
// validates the pipeline end to end.
package adb
