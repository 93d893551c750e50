// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package hostfunc provides host functions to Lua plugins.
//
// Host functions are installed on the global quill table next to the
// extension base classes. They give plugins logging, request ids, module
// imports and plugin registration without exposing the Go loader directly.
package hostfunc

import (
	"context"
	"log/slog"

	"github.com/oklog/ulid/v2"
	lua "github.com/yuin/gopher-lua"

	pluginlua "github.com/quillhost/quill/internal/plugin/lua"
)

// Importer loads a module by dotted name and returns its table.
type Importer func(ctx context.Context, name string) (*lua.LTable, error)

// Reloader registers the extensions defined by a module.
// A nil error means every member registered cleanly.
type Reloader func(ctx context.Context, name string) error

// Functions provides host functions to Lua plugins.
type Functions struct {
	importer Importer
	reloader Reloader
	logger   *slog.Logger
}

// Option configures Functions.
type Option func(*Functions)

// WithLogger sets the logger quill.log writes to.
func WithLogger(l *slog.Logger) Option {
	return func(f *Functions) {
		f.logger = l
	}
}

// New creates host functions backed by importer and reloader.
// Panics if either is nil.
func New(importer Importer, reloader Reloader, opts ...Option) *Functions {
	if importer == nil {
		panic("hostfunc.New: importer cannot be nil")
	}
	if reloader == nil {
		panic("hostfunc.New: reloader cannot be nil")
	}
	f := &Functions{
		importer: importer,
		reloader: reloader,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register adds host functions to the runtime's quill table.
func (f *Functions) Register(rt *pluginlua.Runtime) {
	rt.SetFunction("log", f.logFn)
	rt.SetFunction("new_request_id", f.newRequestIDFn)
	rt.SetFunction("import", f.importFn)
	rt.SetFunction("reload_plugin", f.reloadPluginFn)
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// logFn implements quill.log(level, message [, fields]).
func (f *Functions) logFn(L *lua.LState) int {
	levelName := L.CheckString(1)
	message := L.CheckString(2)
	fields := L.OptTable(3, nil)

	level, ok := logLevels[levelName]
	if !ok {
		L.ArgError(1, "invalid log level \""+levelName+"\" (want debug, info, warn or error)")
		return 0
	}

	attrs := []any{"plugin", pluginlua.CallerModule(L)}
	if fields != nil {
		for _, key := range pluginlua.SortedKeys(fields) {
			attrs = append(attrs, key, pluginlua.FromLua(fields.RawGetString(key)))
		}
	}
	f.logger.Log(contextOf(L), level, message, attrs...)
	return 0
}

func (f *Functions) newRequestIDFn(L *lua.LState) int {
	L.Push(lua.LString(ulid.Make().String()))
	return 1
}

// importFn implements quill.import(name). Load failures raise a Lua error.
func (f *Functions) importFn(L *lua.LState) int {
	name := L.CheckString(1)
	table, err := f.importer(contextOf(L), name)
	if err != nil {
		L.RaiseError("import %q: %s", name, err.Error())
		return 0
	}
	L.Push(table)
	return 1
}

// reloadPluginFn implements quill.reload_plugin(name). It never raises;
// it returns true, or false and a message.
func (f *Functions) reloadPluginFn(L *lua.LState) int {
	name := L.CheckString(1)
	if err := f.reloader(contextOf(L), name); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
