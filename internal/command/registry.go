// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Registry manages command registration and lookup.
// It is thread-safe for concurrent access.
type Registry struct {
	commands map[string]Entry
	logger   *slog.Logger
	mu       sync.RWMutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets the logger conflict warnings go to.
func WithRegistryLogger(l *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = l
	}
}

// NewRegistry creates a new command registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		commands: make(map[string]Entry),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a command to the registry. It implements pluginpkg.CommandTable.
// If a command with the same name exists, it is overwritten and a warning is logged.
func (r *Registry) Register(name string, factory pluginpkg.CommandFactory) error {
	if err := ValidateCommandName(name); err != nil {
		return err
	}
	if factory == nil {
		return oops.Code(CodeInvalidName).With("command", name).Errorf("command %s has no factory", name)
	}

	entry := Entry{
		Name:    name,
		Kind:    factory.Kind(),
		Factory: factory,
		Source:  sourceOf(factory),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.commands[name]; ok {
		r.logger.Warn("command conflict: overwriting existing command",
			"command", name,
			"previous_source", existing.Source,
			"new_source", entry.Source)
	}

	r.commands[name] = entry
	return nil
}

// Get retrieves a command by name.
// Returns the command entry and true if found, or zero value and false if not found.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.commands[name]
	return entry, ok
}

// All returns all registered commands sorted by name.
// The returned slice is a copy and safe to modify.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.commands))
	for _, e := range r.commands {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Match returns the commands whose names match the glob pattern, sorted by name.
func (r *Registry) Match(pattern string) ([]Entry, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, oops.Code(CodeInvalidPattern).With("pattern", pattern).Wrap(err)
	}

	var out []Entry
	for _, e := range r.All() {
		if g.Match(e.Name) {
			out = append(out, e)
		}
	}
	return out, nil
}
