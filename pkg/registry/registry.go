/*
Copyright © 2025 Ava Project Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package registry maps test names to callable test functions.
//
// The registry is plain injected state: the harness receives one
// explicitly at construction, which keeps test doubles trivial and avoids
// hidden module-level globals. The built-in tests live in pkg/suite.
package registry

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/avaproject/ava/pkg/config"
	"github.com/avaproject/ava/pkg/result"
)

// TestFunc is a callable test: it receives the config for exactly one
// device and returns that device's outcome. Implementations are expected
// to honor cfg.DryRun and to report harness-level errors through the
// fatal retcode rather than panicking.
type TestFunc func(ctx context.Context, cfg *config.Config) *result.Outcome

// Registry is a concurrency-safe mapping from test name to TestFunc.
type Registry struct {
	mu    sync.RWMutex
	tests map[string]TestFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tests: make(map[string]TestFunc),
	}
}

// Register adds a test under the given name, replacing any previous entry.
func (r *Registry) Register(name string, fn TestFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tests[name]; exists {
		slog.Warn("replacing registered test", "name", name)
	}
	r.tests[name] = fn
}

// Lookup returns the test registered under name.
func (r *Registry) Lookup(name string) (TestFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.tests[name]
	return fn, ok
}

// Names returns the sorted list of registered test names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tests))
	for name := range r.tests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tests.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tests)
}
