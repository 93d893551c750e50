// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/samber/oops"
	lua "github.com/yuin/gopher-lua"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/plugin/extension"
	pluginlua "github.com/quillhost/quill/internal/plugin/lua"
	"github.com/quillhost/quill/internal/plugin/module"
	"github.com/quillhost/quill/pkg/errutil"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

var tracer = otel.Tracer("quill/plugin")

// CommandRegistration records a command handed to the host's command table.
type CommandRegistration struct {
	Name   string
	Module string
	Kind   pluginpkg.Kind
}

// Report describes the outcome of one ReloadPlugin call.
type Report struct {
	Module string
	// Err is set when the module itself could not be loaded.
	Err error
	// AlreadyRegistered is set when the module had been registered before
	// and nothing was done.
	AlreadyRegistered bool
	// Deferred is set when the module asked to register itself while it
	// was still executing. Registration runs once its load finishes.
	Deferred  bool
	Commands  []CommandRegistration
	Listeners []*ListenerBinding
	// Failures holds one MEMBER_REGISTRATION_FAILED error per class that
	// could not be registered.
	Failures []error
}

// Error returns the load error, or the joined member failures.
func (r Report) Error() error {
	if r.Err != nil {
		return r.Err
	}
	return errors.Join(r.Failures...)
}

func (r Report) status() string {
	switch {
	case r.Err != nil:
		return StatusFailed
	case r.AlreadyRegistered:
		return StatusSkipped
	case r.Deferred:
		return StatusDeferred
	case len(r.Failures) > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

// Registrar loads plugin modules and registers the extensions they export.
// It is not goroutine-safe.
type Registrar struct {
	rt         *pluginlua.Runtime
	loader     *module.Loader
	commands   pluginpkg.CommandTable
	events     *event.Registry
	logger     *slog.Logger
	registered map[string]bool
	// inflight holds modules an outer ReloadPlugin is loading; pending
	// holds modules to register as soon as their load completes.
	inflight  map[string]bool
	pending   map[string]bool
	cmds      []CommandRegistration
	listeners []*ListenerBinding
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the registrar's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registrar) {
		r.logger = l
	}
}

// NewRegistrar creates a registrar that loads modules through loader and
// registers into commands and events.
func NewRegistrar(rt *pluginlua.Runtime, loader *module.Loader, commands pluginpkg.CommandTable, events *event.Registry, opts ...Option) *Registrar {
	r := &Registrar{
		rt:         rt,
		loader:     loader,
		commands:   commands,
		events:     events,
		logger:     slog.Default(),
		registered: make(map[string]bool),
		inflight:   make(map[string]bool),
		pending:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	loader.OnLoaded(r.flushPending)
	return r
}

// ReloadPlugin loads the module called name and registers every extension
// class it exports. It never panics or returns an error; the report carries
// the outcome.
//
// Registration happens once per module: calling it again for a registered
// module does nothing and reports AlreadyRegistered, since extensions are
// never unloaded. A module that requests its own registration while it is
// still executing (directly or through quill.import) is registered when
// its load completes, so classes defined after the request are included.
func (r *Registrar) ReloadPlugin(ctx context.Context, name string) (report Report) {
	report.Module = name

	ctx, span := tracer.Start(ctx, "plugin.reload",
		trace.WithAttributes(attribute.String("plugin.module", name)),
	)
	defer func() {
		if rec := recover(); rec != nil {
			report.Err = oops.In("plugin").With("module", name).Errorf("plugin registration panicked: %v", rec)
			errutil.LogError(r.logger, "plugin registration panicked", report.Err)
		}
		status := report.status()
		PluginLoads.WithLabelValues(status).Inc()
		span.SetAttributes(
			attribute.String("plugin.status", status),
			attribute.Int("plugin.commands", len(report.Commands)),
			attribute.Int("plugin.listeners", len(report.Listeners)),
		)
		if err := report.Error(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if r.registered[name] {
		report.AlreadyRegistered = true
		r.logger.Debug("plugin already registered", "module", name)
		return report
	}

	if r.loader.Loading(name) {
		if !r.inflight[name] {
			r.pending[name] = true
		}
		report.Deferred = true
		r.logger.Debug("plugin registration deferred until load completes", "module", name)
		return report
	}

	r.inflight[name] = true
	defer delete(r.inflight, name)
	m, err := r.loader.Load(ctx, name)
	if err != nil {
		report.Err = err
		errutil.LogError(r.logger, "plugin load failed", err, "module", name)
		return report
	}
	r.registered[name] = true

	for _, key := range pluginlua.SortedKeys(m.Table) {
		cls, ok := r.exportedClass(m.Table, key)
		if !ok {
			continue
		}
		r.registerMember(ctx, m, key, cls, &report)
	}

	r.logger.Info("plugin loaded",
		"module", name,
		"commands", len(report.Commands),
		"listeners", len(report.Listeners),
		"failures", len(report.Failures),
	)
	return report
}

// flushPending registers m if it asked for registration while loading.
func (r *Registrar) flushPending(ctx context.Context, m *module.Module) {
	if !r.pending[m.Name] {
		return
	}
	delete(r.pending, m.Name)
	r.ReloadPlugin(ctx, m.Name)
}

// exportedClass returns the class a module exports under key. Dunder names,
// non-class values, the builtin bases and other modules are skipped.
func (r *Registrar) exportedClass(table *lua.LTable, key string) (*lua.LTable, bool) {
	if strings.HasPrefix(key, "__") {
		return nil, false
	}
	v := table.RawGetString(key)
	if r.loader.IsModule(v) || !pluginlua.IsClass(v) {
		return nil, false
	}
	cls := v.(*lua.LTable)
	if pluginlua.IsBuiltin(cls) {
		return nil, false
	}
	return cls, true
}

func (r *Registrar) registerMember(ctx context.Context, m *module.Module, name string, cls *lua.LTable, report *Report) {
	kind, ok := extension.Classify(extension.Descriptor{
		Name:  name,
		Kinds: r.rt.ClassKinds(cls),
	})
	if !ok {
		return
	}

	var err error
	if kind == pluginpkg.KindEventListener {
		var b *ListenerBinding
		if b, err = r.bindListener(ctx, m.Name, name, cls); err == nil {
			report.Listeners = append(report.Listeners, b)
			r.listeners = append(r.listeners, b)
		}
	} else {
		reg := CommandRegistration{Name: name, Module: m.Name, Kind: kind}
		if err = r.commands.Register(name, newCommandFactory(r.rt, reg, cls, r.logger)); err == nil {
			report.Commands = append(report.Commands, reg)
			r.cmds = append(r.cmds, reg)
		}
	}

	if err != nil {
		err = ErrMemberRegistration(m.Name, name, kind, err)
		report.Failures = append(report.Failures, err)
		MemberFailures.Inc()
		errutil.LogError(r.logger, "plugin member registration failed", err)
		return
	}

	Registrations.WithLabelValues(kind.String()).Inc()
	r.logger.Debug("plugin member registered", "module", m.Name, "member", name, "kind", kind.String())
}

// Commands returns the commands registered so far in registration order.
func (r *Registrar) Commands() []CommandRegistration {
	return slices.Clone(r.cmds)
}

// Listeners returns the listener bindings created so far in registration order.
func (r *Registrar) Listeners() []*ListenerBinding {
	return slices.Clone(r.listeners)
}

// Registered reports whether ReloadPlugin has registered name.
func (r *Registrar) Registered(name string) bool {
	return r.registered[name]
}
