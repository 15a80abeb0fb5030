/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

package harness

import (
	"fmt"
	"time"

	"github.com/avaproject/ava/pkg/header"
	"github.com/avaproject/ava/pkg/result"
)

// APIVersion is the schema version for serialized test reports.
const APIVersion = "ava/v1alpha1"

// Status represents the overall outcome of one orchestrated run.
type Status string

const (
	// StatusPass indicates every device outcome succeeded.
	StatusPass Status = "pass"

	// StatusFail indicates one or more devices reported a soft failure.
	StatusFail Status = "fail"

	// StatusEmpty indicates no devices were discovered; the run is still
	// valid and reportable.
	StatusEmpty Status = "empty"
)

// Report is the aggregated result of running one test across all
// discovered devices, with outcomes in device-enumeration order.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Test is the registry name of the test that was run.
	Test string `json:"test" yaml:"test"`

	// Summary contains aggregate statistics for the run.
	Summary Summary `json:"summary" yaml:"summary"`

	// Outcomes contains one entry per device, in enumeration order.
	Outcomes []*result.Outcome `json:"outcomes" yaml:"outcomes"`
}

// Summary contains aggregate statistics about one run.
type Summary struct {
	// Passed is the count of devices whose outcome succeeded.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the count of devices with soft failures.
	Failed int `json:"failed" yaml:"failed"`

	// Total is the number of devices the test ran against.
	Total int `json:"total" yaml:"total"`

	// Status is the overall run status.
	Status Status `json:"status" yaml:"status"`

	// Duration is how long the whole run took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewReport creates a Report with its envelope initialized.
func NewReport(test, toolVersion string) *Report {
	r := &Report{
		Test:     test,
		Outcomes: make([]*result.Outcome, 0),
	}
	r.Init(header.KindTestReport, APIVersion, toolVersion)
	return r
}

// FatalError signals that a test invocation reported the fatal sentinel
// retcode. It aborts all remaining device work and carries the offending
// outcome so the top level can print its diagnostic and decide the process
// exit code.
type FatalError struct {
	// Serial is the device whose invocation reported the sentinel.
	Serial string

	// Outcome is the fatal outcome as returned by the test.
	Outcome *result.Outcome
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("test %q reported the fatal retcode on device %s", e.Outcome.Test, e.Serial)
}
