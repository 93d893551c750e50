// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package module

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	lua "github.com/yuin/gopher-lua"

	pluginlua "github.com/quillhost/quill/internal/plugin/lua"
)

// Module is a loaded plugin module.
type Module struct {
	Name      string
	Path      string
	Namespace bool
	// Table holds the module's top-level definitions. Namespace modules get an
	// empty table carrying only the directory path.
	Table *lua.LTable
}

// Loader loads modules through a Resolver and caches them by name.
type Loader struct {
	resolver *Resolver
	rt       *pluginlua.Runtime
	logger   *slog.Logger
	modules  map[string]*Module
	tables   map[*lua.LTable]*Module
	loading  []string
	onLoaded []func(context.Context, *Module)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader's logger.
func WithLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// NewLoader creates a loader executing sources in rt.
func NewLoader(resolver *Resolver, rt *pluginlua.Runtime, opts ...LoaderOption) *Loader {
	ld := &Loader{
		resolver: resolver,
		rt:       rt,
		logger:   slog.Default(),
		modules:  make(map[string]*Module),
		tables:   make(map[*lua.LTable]*Module),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Resolver returns the resolver the loader consults.
func (ld *Loader) Resolver() *Resolver {
	return ld.resolver
}

// OnLoaded registers fn to run after a module finishes executing and is
// cached, including modules reached through nested imports.
func (ld *Loader) OnLoaded(fn func(context.Context, *Module)) {
	ld.onLoaded = append(ld.onLoaded, fn)
}

// Loading reports whether name is currently executing, i.e. it is on the
// stack of an in-progress Load.
func (ld *Loader) Loading(name string) bool {
	return slices.Contains(ld.loading, name)
}

// Load returns the module called name, executing it on first use.
// Repeated calls return the same *Module. Failed loads are not cached, so a
// later call retries resolution and execution.
func (ld *Loader) Load(ctx context.Context, name string) (*Module, error) {
	if m, ok := ld.modules[name]; ok {
		return m, nil
	}
	if slices.Contains(ld.loading, name) {
		return nil, ErrImportCycle(name, append(slices.Clone(ld.loading), name))
	}

	loc, err := ld.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	if loc.Kind == LocationNamespace {
		m := &Module{
			Name:      name,
			Path:      loc.Path,
			Namespace: true,
			Table:     ld.rt.NewNamespace(name, loc.Path),
		}
		ld.store(m)
		ld.logger.Debug("namespace module created", "module", name, "path", loc.Path)
		ld.notify(ctx, m)
		return m, nil
	}

	table, err := ld.exec(ctx, name, loc.Path)
	if err != nil {
		return nil, ErrExecutionFailed(name, loc.Path, pluginlua.Traceback(err), err)
	}

	m := &Module{Name: name, Path: loc.Path, Table: table}
	ld.store(m)
	ld.logger.Debug("module loaded", "module", name, "path", loc.Path)
	ld.notify(ctx, m)
	return m, nil
}

// exec runs the source with name on the loading stack.
func (ld *Loader) exec(ctx context.Context, name, path string) (*lua.LTable, error) {
	ld.loading = append(ld.loading, name)
	defer func() {
		ld.loading = ld.loading[:len(ld.loading)-1]
	}()
	return ld.rt.ExecFile(ctx, name, path)
}

// notify runs the OnLoaded callbacks once m is cached and off the loading stack.
func (ld *Loader) notify(ctx context.Context, m *Module) {
	for _, fn := range ld.onLoaded {
		fn(ctx, m)
	}
}

func (ld *Loader) store(m *Module) {
	ld.modules[m.Name] = m
	ld.tables[m.Table] = m
}

// Lookup returns a cached module without loading it.
func (ld *Loader) Lookup(name string) (*Module, bool) {
	m, ok := ld.modules[name]
	return m, ok
}

// Modules returns the names of all cached modules in sorted order.
func (ld *Loader) Modules() []string {
	names := make([]string, 0, len(ld.modules))
	for name := range ld.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsModule reports whether v is the table of a loaded module.
func (ld *Loader) IsModule(v lua.LValue) bool {
	t, ok := v.(*lua.LTable)
	if !ok {
		return false
	}
	_, ok = ld.tables[t]
	return ok
}
