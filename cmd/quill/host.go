// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/quillhost/quill/internal/command"
	"github.com/quillhost/quill/internal/editor"
	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/plugin"
)

// host is the assembled process: the in-memory editor, the command table
// and the plugin core feeding both.
type host struct {
	editor     *editor.Editor
	commands   *command.Registry
	dispatcher *command.Dispatcher
	core       *plugin.Core
	reports    []plugin.Report
}

// openHost builds a host and registers every plugin under paths.
func openHost(ctx context.Context, paths []string, logger *slog.Logger) (*host, error) {
	events := event.NewRegistry(event.WithLogger(logger))
	commands := command.NewRegistry(command.WithRegistryLogger(logger))
	dispatcher, err := command.NewDispatcher(commands, command.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	core, err := plugin.Open(ctx, plugin.Config{
		Paths:    paths,
		Commands: commands,
		Events:   events,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}

	h := &host{
		editor:     editor.New(events, editor.WithLogger(logger)),
		commands:   commands,
		dispatcher: dispatcher,
		core:       core,
	}
	h.reports = core.Registrar.Scan(ctx)
	return h, nil
}

// failures returns the reports that carry an error.
func (h *host) failures() []plugin.Report {
	var out []plugin.Report
	for _, r := range h.reports {
		if r.Error() != nil {
			out = append(out, r)
		}
	}
	return out
}

func (h *host) Close() {
	h.core.Close()
}
