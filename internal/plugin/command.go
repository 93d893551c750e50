// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	pluginlua "github.com/quillhost/quill/internal/plugin/lua"
	"github.com/quillhost/quill/pkg/errutil"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// commandFactory builds Lua command instances for the host's command table.
type commandFactory struct {
	rt     *pluginlua.Runtime
	reg    CommandRegistration
	cls    *lua.LTable
	logger *slog.Logger
}

func newCommandFactory(rt *pluginlua.Runtime, reg CommandRegistration, cls *lua.LTable, logger *slog.Logger) *commandFactory {
	return &commandFactory{rt: rt, reg: reg, cls: cls, logger: logger}
}

// Kind implements pluginpkg.CommandFactory.
func (f *commandFactory) Kind() pluginpkg.Kind {
	return f.reg.Kind
}

// Source returns the module the command was defined in.
func (f *commandFactory) Source() string {
	return f.reg.Module
}

// New constructs the command. Text commands receive the target view and
// window commands the target window; application commands take no argument.
func (f *commandFactory) New(ctx context.Context, target pluginpkg.Target) (pluginpkg.Command, error) {
	var args []lua.LValue
	switch f.reg.Kind {
	case pluginpkg.KindTextCommand:
		if target.View == nil {
			return nil, ErrMissingTarget(f.reg.Name, f.reg.Kind)
		}
		args = append(args, f.rt.WrapView(target.View))
	case pluginpkg.KindWindowCommand:
		if target.Window == nil {
			return nil, ErrMissingTarget(f.reg.Name, f.reg.Kind)
		}
		args = append(args, f.rt.WrapWindow(target.Window))
	}

	obj, err := f.rt.New(ctx, f.cls, args...)
	if err != nil {
		return nil, oops.In("plugin").
			With("command", f.reg.Name).
			With("module", f.reg.Module).
			Hint("command constructor raised").
			Wrap(err)
	}
	return &luaCommand{factory: f, obj: obj}, nil
}

// luaCommand adapts a Lua command instance to pluginpkg.Command.
type luaCommand struct {
	factory *commandFactory
	obj     *lua.LTable
}

func (c *luaCommand) IsEnabled(args pluginpkg.Args) bool {
	return c.predicate("is_enabled", args)
}

func (c *luaCommand) IsVisible(args pluginpkg.Args) bool {
	return c.predicate("is_visible", args)
}

// predicate calls a boolean method. A raising method counts as false.
func (c *luaCommand) predicate(method string, args pluginpkg.Args) bool {
	rt := c.factory.rt
	rets, err := rt.CallMethod(context.Background(), c.obj, method, 1, pluginlua.ToLua(rt.L, args))
	if err != nil {
		errutil.LogWarn(c.factory.logger, "command predicate failed", err,
			"command", c.factory.reg.Name, "method", method)
		return false
	}
	return lua.LVAsBool(rets[0])
}

func (c *luaCommand) Run(ctx context.Context, args pluginpkg.Args) error {
	rt := c.factory.rt
	if _, err := rt.CallMethod(ctx, c.obj, "run", 0, pluginlua.ToLua(rt.L, args)); err != nil {
		return oops.In("plugin").
			With("command", c.factory.reg.Name).
			With("module", c.factory.reg.Module).
			Wrap(err)
	}
	return nil
}
