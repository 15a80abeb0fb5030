/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package harness orchestrates running one named test across every
// discovered device.
//
// For each serial in enumeration order the harness builds an independent
// device config, invokes the registered test function, and collects its
// outcome. The return-code convention lets a single test distinguish
// "this device failed" from "the harness cannot proceed": retcode -1 is
// the one fatal sentinel and aborts the whole run via *FatalError, while
// any other nonzero code is recorded as a soft failure and iteration
// continues. Zero discovered devices is a valid, reportable run, not an
// error.
//
// Devices are processed sequentially by default. Setting Runner.Parallel
// above 1 fans invocations out over an errgroup; outcomes are reordered
// back into enumeration order so output stays reproducible, and a fatal
// outcome cancels in-flight invocations, whose partial outcomes are
// discarded rather than reported.
package harness
