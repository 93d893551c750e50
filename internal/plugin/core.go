// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"context"
	"log/slog"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"

	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/plugin/hostfunc"
	pluginlua "github.com/quillhost/quill/internal/plugin/lua"
	"github.com/quillhost/quill/internal/plugin/module"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Config holds what Open needs from the host.
type Config struct {
	// Paths are the plugin search roots, searched in order.
	Paths    []string
	Commands pluginpkg.CommandTable
	// Events defaults to a fresh registry when nil.
	Events *event.Registry
	Logger *slog.Logger
}

// Core is an assembled plugin core: one Lua runtime, its module loader and
// the registrar wired to the host.
type Core struct {
	Runtime   *pluginlua.Runtime
	Loader    *module.Loader
	Registrar *Registrar
	Events    *event.Registry
}

// Open creates the Lua runtime, installs the quill host functions and
// returns the assembled core. Close releases it.
func Open(ctx context.Context, cfg Config) (*Core, error) {
	if cfg.Commands == nil {
		return nil, oops.In("plugin").Errorf("command table is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	events := cfg.Events
	if events == nil {
		events = event.NewRegistry(event.WithLogger(logger))
	}

	rt, err := pluginlua.NewRuntime(ctx, pluginlua.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	loader := module.NewLoader(module.NewResolver(cfg.Paths...), rt, module.WithLogger(logger))
	registrar := NewRegistrar(rt, loader, cfg.Commands, events, WithLogger(logger))

	hostfunc.New(
		func(ctx context.Context, name string) (*lua.LTable, error) {
			m, err := loader.Load(ctx, name)
			if err != nil {
				return nil, err
			}
			return m.Table, nil
		},
		func(ctx context.Context, name string) error {
			return registrar.ReloadPlugin(ctx, name).Error()
		},
		hostfunc.WithLogger(logger),
	).Register(rt)

	return &Core{
		Runtime:   rt,
		Loader:    loader,
		Registrar: registrar,
		Events:    events,
	}, nil
}

// Close releases the Lua runtime. Registered commands stop working afterwards.
func (c *Core) Close() {
	c.Runtime.Close()
}
