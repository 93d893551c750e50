// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quillhost/quill/pkg/errutil"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

var tracer = otel.Tracer("quill/command")

// Dispatcher looks up commands, builds them for a target and runs them.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// DispatcherOption configures a Dispatcher during construction.
type DispatcherOption func(*Dispatcher)

// WithLogger sets the logger command failures are reported to.
func WithLogger(l *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// NewDispatcher creates a new command dispatcher with the given registry.
// Returns an error if registry is nil.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) (*Dispatcher, error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}
	d := &Dispatcher{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch parses input and runs the named command against target.
func (d *Dispatcher) Dispatch(ctx context.Context, input string, target pluginpkg.Target) error {
	parsed, err := Parse(input)
	if err != nil {
		return err
	}
	return d.Run(ctx, parsed.Name, target, parsed.Args)
}

// Run constructs the command called name for target and runs it with args.
// A command whose IsEnabled reports false is not run.
func (d *Dispatcher) Run(ctx context.Context, name string, target pluginpkg.Target, args pluginpkg.Args) (err error) {
	if args == nil {
		args = pluginpkg.Args{}
	}

	metrics := NewMetricsRecorder()
	defer metrics.Record()

	ctx, span := tracer.Start(ctx, "command.execute",
		trace.WithAttributes(attribute.String("command.name", name)),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	entry, ok := d.registry.Get(name)
	if !ok {
		metrics.SetCommand(name, "")
		metrics.SetStatus(StatusNotFound)
		err = ErrUnknownCommand(name)
		return err
	}

	metrics.SetCommand(name, entry.Source)
	span.SetAttributes(
		attribute.String("command.source", entry.Source),
		attribute.String("command.kind", entry.Kind.String()),
	)

	cmd, err := entry.Factory.New(ctx, target)
	if err != nil {
		metrics.SetStatus(StatusError)
		err = ErrCommandFailed(name, entry.Source, err)
		errutil.LogWarn(d.logger, "command construction failed", err)
		return err
	}

	if !cmd.IsEnabled(args) {
		metrics.SetStatus(StatusDisabled)
		err = ErrCommandDisabled(name)
		return err
	}

	if runErr := cmd.Run(ctx, args); runErr != nil {
		metrics.SetStatus(StatusError)
		err = ErrCommandFailed(name, entry.Source, runErr)
		errutil.LogWarn(d.logger, "command execution failed", err)
		return err
	}

	metrics.SetStatus(StatusSuccess)
	return nil
}
