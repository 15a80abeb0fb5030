/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package result defines the outcome model for a single test invocation
// against a single device.
//
// Return codes follow the original harness convention: 0 is success, -1 is
// the single fatal sentinel that aborts the whole run, and any other
// nonzero value is a soft failure isolated to its device.
package result

import "time"

// Return code conventions honored by the harness.
const (
	// RetCodeOK indicates the invocation succeeded.
	RetCodeOK = 0

	// RetCodeFatal is the fatal sentinel: the test harness itself cannot
	// proceed and the whole run must abort. It is the only fatal value;
	// all other nonzero codes are soft per-device failures.
	RetCodeFatal = -1

	// RetCodeTimeout marks a device invocation that exceeded its time
	// limit. Reported as a soft failure, never fatal.
	RetCodeTimeout = 124
)

// SubResult is one entry of an outcome's nested result list, carrying its
// own return code.
type SubResult struct {
	// Name identifies the sub-check (e.g. a property key or codec name).
	Name string `json:"name" yaml:"name"`

	// RetCode is the sub-check return code (0 success, nonzero failure).
	RetCode int `json:"retcode" yaml:"retcode"`

	// Message provides additional context, especially for failures.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Data is an arbitrary structured payload for this sub-check.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Outcome is the result of one test invocation against one device config.
// It is produced by the invoked test function and owned by the harness
// until serialized.
type Outcome struct {
	// Serial is the serial of the device the test ran against.
	Serial string `json:"serial" yaml:"serial"`

	// Test is the registry name of the test that produced this outcome.
	Test string `json:"test" yaml:"test"`

	// RetCode is the invocation return code (see the RetCode constants).
	RetCode int `json:"retcode" yaml:"retcode"`

	// Backtrace is optional diagnostic text for failures.
	Backtrace string `json:"backtrace,omitempty" yaml:"backtrace,omitempty"`

	// SubResults is an optional ordered list of nested results.
	SubResults []SubResult `json:"results,omitempty" yaml:"results,omitempty"`

	// Payload is an arbitrary structured payload produced by the test.
	Payload map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`

	// Duration is how long the invocation took.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Fatal reports whether the outcome carries the fatal sentinel.
func (o *Outcome) Fatal() bool {
	return o.RetCode == RetCodeFatal
}

// Failed reports whether the outcome carries any nonzero return code.
func (o *Outcome) Failed() bool {
	return o.RetCode != RetCodeOK
}

// FailedSubResults returns the nested results with nonzero return codes,
// in their original order.
func (o *Outcome) FailedSubResults() []SubResult {
	var failed []SubResult
	for _, sub := range o.SubResults {
		if sub.RetCode != RetCodeOK {
			failed = append(failed, sub)
		}
	}
	return failed
}

// OK constructs a successful outcome for the given test.
func OK(test string) *Outcome {
	return &Outcome{Test: test, RetCode: RetCodeOK}
}

// Fatal constructs a fatal-sentinel outcome with the given diagnostic.
func Fatal(test string, err error) *Outcome {
	o := &Outcome{Test: test, RetCode: RetCodeFatal}
	if err != nil {
		o.Backtrace = err.Error()
	}
	return o
}

// Timeout constructs the soft outcome reported when a device invocation
// exceeds its time limit.
func Timeout(test string, limit time.Duration) *Outcome {
	return &Outcome{
		Test:      test,
		RetCode:   RetCodeTimeout,
		Backtrace: "device invocation exceeded " + limit.String(),
	}
}
