// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package lua

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// APIName is the global table plugins reach the host through.
const APIName = "quill"

// Raw fields the runtime sets on module tables.
const (
	FieldName = "__name"
	FieldFile = "__file"
	FieldPath = "__path"
)

// Runtime owns the Lua state plugins execute in.
type Runtime struct {
	L         *lua.LState
	api       *lua.LTable
	classMeta *lua.LTable
	newFn     *lua.LFunction
	command   *lua.LTable
	bases     map[pluginpkg.Kind]*lua.LTable
	kinds     map[*lua.LTable]pluginpkg.Kind
	logger    *slog.Logger
	closed    bool
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the logger used for Lua print output and runtime diagnostics.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(rt *Runtime) {
		rt.logger = l
	}
}

// NewRuntime creates a sandboxed state with the quill table and base classes installed.
func NewRuntime(ctx context.Context, opts ...RuntimeOption) (*Runtime, error) {
	rt := &Runtime{
		bases:  make(map[pluginpkg.Kind]*lua.LTable),
		kinds:  make(map[*lua.LTable]pluginpkg.Kind),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(rt)
	}

	L, err := NewStateFactory(rt.logger).NewState(ctx)
	if err != nil {
		return nil, oops.In("lua").With("operation", "new_runtime").Hint("failed to create state").Wrap(err)
	}
	rt.L = L

	rt.api = L.NewTable()
	rt.installClasses()
	rt.installHandles()
	L.SetGlobal(APIName, rt.api)

	return rt, nil
}

// API returns the global quill table so host functions can be added to it.
func (rt *Runtime) API() *lua.LTable {
	return rt.api
}

// SetFunction installs fn on the quill table under name.
func (rt *Runtime) SetFunction(name string, fn lua.LGFunction) {
	rt.L.SetField(rt.api, name, rt.L.NewFunction(fn))
}

// Close releases the Lua state. Safe to call more than once.
func (rt *Runtime) Close() {
	if rt.closed {
		return
	}
	rt.closed = true
	rt.L.Close()
}

// ExecFile compiles the source file at path and runs it in a fresh
// environment table bound to name. The environment falls back to the
// runtime globals for lookups, so quill and the safe libraries stay visible.
// The populated environment is returned; nothing is kept on failure.
func (rt *Runtime) ExecFile(ctx context.Context, name, path string) (*lua.LTable, error) {
	if rt.closed {
		return nil, oops.In("lua").With("module", name).New("runtime is closed")
	}

	fn, err := rt.L.LoadFile(path)
	if err != nil {
		return nil, oops.In("lua").With("module", name).With("path", path).Hint("failed to compile").Wrap(err)
	}

	env := rt.L.NewTable()
	env.RawSetString(FieldName, lua.LString(name))
	env.RawSetString(FieldFile, lua.LString(path))
	meta := rt.L.NewTable()
	meta.RawSetString("__index", rt.L.G.Global)
	rt.L.SetMetatable(env, meta)
	rt.L.SetFEnv(fn, env)

	if _, err := rt.Call(ctx, fn, 0); err != nil {
		return nil, oops.In("lua").With("module", name).With("path", path).Hint("module body raised").Wrap(err)
	}
	return env, nil
}

// NewNamespace returns an empty module table standing in for a directory.
func (rt *Runtime) NewNamespace(name, dir string) *lua.LTable {
	t := rt.L.NewTable()
	t.RawSetString(FieldName, lua.LString(name))
	t.RawSetString(FieldPath, lua.LString(dir))
	return t
}

// Call invokes fn in protected mode and returns exactly nret results.
func (rt *Runtime) Call(ctx context.Context, fn lua.LValue, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	if rt.closed {
		return nil, oops.In("lua").New("runtime is closed")
	}

	var rets []lua.LValue
	err := rt.withContext(ctx, func() error {
		if err := rt.L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    nret,
			Protect: true,
		}, args...); err != nil {
			return err
		}
		rets = make([]lua.LValue, nret)
		for i := 0; i < nret; i++ {
			rets[i] = rt.L.Get(i - nret)
		}
		rt.L.Pop(nret)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rets, nil
}

// Method returns the function obj resolves name to, following class inheritance.
func (rt *Runtime) Method(obj *lua.LTable, name string) (*lua.LFunction, bool) {
	fn, ok := rt.L.GetField(obj, name).(*lua.LFunction)
	return fn, ok
}

// CallMethod calls obj:name(args...) and returns nret results.
func (rt *Runtime) CallMethod(ctx context.Context, obj *lua.LTable, name string, nret int, args ...lua.LValue) ([]lua.LValue, error) {
	fn, ok := rt.Method(obj, name)
	if !ok {
		return nil, oops.In("lua").With("method", name).Errorf("object has no method %q", name)
	}
	return rt.Call(ctx, fn, nret, append([]lua.LValue{obj}, args...)...)
}

// withContext attaches ctx to the state while fn runs and restores whatever
// context was attached before, so nested calls from host functions unwind cleanly.
func (rt *Runtime) withContext(ctx context.Context, fn func() error) error {
	prev := rt.L.Context()
	rt.L.SetContext(ctx)
	defer func() {
		if prev != nil {
			rt.L.SetContext(prev)
		} else {
			rt.L.RemoveContext()
		}
	}()
	return fn()
}

// Traceback returns the Lua stack trace carried by err, if any.
func Traceback(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.StackTrace
	}
	return ""
}

// CallerModule returns the name of the innermost module on the Lua call
// stack, or "" when the stack holds no module code.
func CallerModule(L *lua.LState) string {
	for level := 0; level < 32; level++ {
		dbg, ok := L.GetStack(level)
		if !ok {
			return ""
		}
		fn, err := L.GetInfo("f", dbg, lua.LNil)
		if err != nil {
			return ""
		}
		env, ok := L.GetFEnv(fn).(*lua.LTable)
		if !ok || env == L.G.Global {
			continue
		}
		if name, ok := env.RawGetString(FieldName).(lua.LString); ok {
			return string(name)
		}
	}
	return ""
}
