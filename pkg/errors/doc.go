/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured error types for the ava harness.
//
// Every failure path in the harness carries an ErrorCode so callers can map
// errors to exit behavior without string matching:
//
//	UNKNOWN_TEST     requested test name absent from the registry (fatal)
//	NO_DEVICES       serial filter matched no attached device (fatal)
//	FATAL_TEST       a test reported the fatal retcode (fatal)
//	IO_ERROR         report destination could not be written (fatal)
//	TIMEOUT          an operation exceeded its time limit (soft per device)
//	INVALID_REQUEST  malformed input such as an unknown output format
//	INTERNAL         internal harness error
//
// StructuredError supports errors.Is/errors.As via Unwrap, and HasCode walks
// a wrap chain looking for a specific code:
//
//	if errors.HasCode(err, errors.ErrCodeUnknownTest) {
//	    // report and exit nonzero before any device work
//	}
package errors
