// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package lua

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// safeLibrary represents a Lua library that is safe to load in sandboxed state.
type safeLibrary struct {
	name string
	fn   lua.LGFunction
}

// defaultSafeLibraries returns the list of libraries safe to load.
// Safe: base, table, string, math.
// Blocked: os, io, debug, package.
func defaultSafeLibraries() []safeLibrary {
	return []safeLibrary{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
}

// StateFactory creates sandboxed Lua states with only safe libraries.
type StateFactory struct {
	// libraries allows overriding the default safe libraries for testing.
	libraries []safeLibrary
	logger    *slog.Logger
}

// NewStateFactory creates a new state factory. Output of the Lua print
// function goes to logger at info level.
func NewStateFactory(logger *slog.Logger) *StateFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &StateFactory{
		libraries: defaultSafeLibraries(),
		logger:    logger,
	}
}

// unsafeBaseFunctions lists base library functions that load code from
// outside the plugin loader. Plugins reach other modules through quill.import.
var unsafeBaseFunctions = []string{"dofile", "loadfile", "loadstring", "load", "require", "module"}

// NewState creates a fresh Lua state with only safe libraries loaded.
// The ctx parameter is attached to the state for the duration of library setup.
func (f *StateFactory) NewState(ctx context.Context) (*lua.LState, error) {
	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // Don't load any libraries by default
	})
	L.SetContext(ctx)
	defer L.RemoveContext()

	for _, lib := range f.libraries {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("failed to open library %s: %w", lib.name, err)
		}
	}

	for _, fn := range unsafeBaseFunctions {
		L.SetGlobal(fn, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(f.printFn()))

	return L, nil
}

// printFn routes print output to the structured logger instead of stdout.
func (f *StateFactory) printFn() lua.LGFunction {
	return func(L *lua.LState) int {
		top := L.GetTop()
		parts := make([]string, 0, top)
		for i := 1; i <= top; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		f.logger.Info(strings.Join(parts, "\t"), "source", "lua.print")
		return 0
	}
}
