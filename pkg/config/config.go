/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config defines the run options and the per-device configuration
// derived from them.
//
// Options is the immutable snapshot of CLI-level intent for one run. Config
// is an Options value specialized to exactly one device serial; it is built
// once per discovered device, consumed by exactly one test invocation, and
// never shared. Build performs a deep copy so mutating one device's config
// can never affect a sibling.
package config

import (
	"fmt"
	"slices"
	"time"
)

// Options is the immutable snapshot of CLI-level intent for one run.
type Options struct {
	// Debug is the verbosity counter (-1 quiet, 0 normal, >0 verbose).
	Debug int `json:"debug" yaml:"debug"`

	// DryRun disables test side effects while keeping enumeration and
	// configuration building active.
	DryRun bool `json:"dryRun" yaml:"dryRun"`

	// Serial is the optional device-serial filter for enumeration.
	Serial string `json:"serial,omitempty" yaml:"serial,omitempty"`

	// Encoder is the optional encoder name tests should target.
	Encoder string `json:"encoder,omitempty" yaml:"encoder,omitempty"`

	// Test is the optional name of the test to run.
	Test string `json:"test,omitempty" yaml:"test,omitempty"`

	// InFiles is the list of input media files.
	InFiles []string `json:"inFiles,omitempty" yaml:"inFiles,omitempty"`

	// OutFile is the report destination; empty or "-" means stdout.
	OutFile string `json:"outFile,omitempty" yaml:"outFile,omitempty"`

	// DeviceTimeout bounds a single device invocation; zero means no limit.
	DeviceTimeout time.Duration `json:"deviceTimeout,omitempty" yaml:"deviceTimeout,omitempty"`
}

// Config is an Options value specialized to exactly one device serial.
type Config struct {
	// Serial is the serial of the one device this config targets.
	Serial string `json:"serial" yaml:"serial"`

	Debug         int           `json:"debug" yaml:"debug"`
	DryRun        bool          `json:"dryRun" yaml:"dryRun"`
	Encoder       string        `json:"encoder,omitempty" yaml:"encoder,omitempty"`
	Test          string        `json:"test,omitempty" yaml:"test,omitempty"`
	InFiles       []string      `json:"inFiles,omitempty" yaml:"inFiles,omitempty"`
	OutFile       string        `json:"outFile,omitempty" yaml:"outFile,omitempty"`
	DeviceTimeout time.Duration `json:"deviceTimeout,omitempty" yaml:"deviceTimeout,omitempty"`
}

// Build constructs a fully independent Config for one device serial.
// Every field is copied verbatim from opts except Serial, which is
// overwritten with the device serial. Reference-typed fields are cloned so
// the result shares no mutable state with opts or any sibling config.
// Construction is total over valid options and has no side effects.
func Build(opts Options, serial string) *Config {
	return &Config{
		Serial:        serial,
		Debug:         opts.Debug,
		DryRun:        opts.DryRun,
		Encoder:       opts.Encoder,
		Test:          opts.Test,
		InFiles:       slices.Clone(opts.InFiles),
		OutFile:       opts.OutFile,
		DeviceTimeout: opts.DeviceTimeout,
	}
}

// Clone returns an independent copy of the config.
func (c *Config) Clone() *Config {
	dup := *c
	dup.InFiles = slices.Clone(c.InFiles)
	return &dup
}

// String renders the config for debug logging, one field per line.
func (c *Config) String() string {
	return fmt.Sprintf(
		"serial: %s\ndebug: %d\ndry_run: %t\nencoder: %s\ntest: %s\ninfile_list: %v\noutfile: %s\n",
		c.Serial, c.Debug, c.DryRun, c.Encoder, c.Test, c.InFiles, c.OutFile)
}
