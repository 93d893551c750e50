// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import "context"

// Args holds the named arguments a command is invoked with.
type Args map[string]any

// Command is a constructed command instance, bound to its target.
type Command interface {
	// IsEnabled reports whether the command can run with args.
	IsEnabled(args Args) bool

	// IsVisible reports whether the command should be shown to the user.
	IsVisible(args Args) bool

	// Run executes the command.
	Run(ctx context.Context, args Args) error
}

// Target carries the context handles a command is constructed with.
// Window commands need Window, text commands need View, application
// commands need neither.
type Target struct {
	Window Window
	View   View
}

// CommandFactory builds command instances on demand.
// The host calls New at invocation time with the handles it owns.
type CommandFactory interface {
	Kind() Kind
	New(ctx context.Context, target Target) (Command, error)
}

// CommandTable is the host's command registration surface.
type CommandTable interface {
	Register(name string, factory CommandFactory) error
}
