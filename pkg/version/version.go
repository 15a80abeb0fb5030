/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package version provides loose semantic version parsing and comparison.
//
// It is used to gate the minimum supported adb version from the
// "Android Debug Bridge version X.Y.Z" banner. Suffixes after '-' or '+'
// (build metadata) are preserved but ignored for comparison.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures.
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrTooManyComponents = errors.New("version has more than 3 components")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version represents a version number with Major, Minor, and Patch
// components. Extras holds any suffix after '-' or '+' (e.g. "-android").
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`

	// Extras stores additional version metadata like "-google" or "+41".
	Extras string `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// New creates a new Version with the specified major, minor, and patch values.
func New(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// String returns the canonical "Major.Minor.Patch" representation.
// Extras are not included.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse parses a version string into a Version struct.
// Supported formats: "1", "1.2", "1.2.3", "v1.2.3", "1.2.3-suffix".
// Missing components default to zero.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	var v Version
	if i := strings.IndexAny(s, "-+"); i >= 0 {
		v.Extras = s[i:]
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Version{}, fmt.Errorf("%w: %q", ErrTooManyComponents, s)
	}

	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if n < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrNegativeComponent, part)
		}
		*fields[i] = n
	}

	return v, nil
}

// Compare returns -1, 0, or 1 when v is less than, equal to, or greater
// than o. Extras are ignored.
func (v Version) Compare(o Version) int {
	pairs := [][2]int{
		{v.Major, o.Major},
		{v.Minor, o.Minor},
		{v.Patch, o.Patch},
	}
	for _, p := range pairs {
		switch {
		case p[0] < p[1]:
			return -1
		case p[0] > p[1]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v is greater than or equal to o.
func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}
