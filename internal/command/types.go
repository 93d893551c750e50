// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package command provides the host command table, parser and dispatcher
// that plugin commands are registered into and run through.
package command

import (
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// SourceHost is the Source of commands the host registers itself.
const SourceHost = "host"

// Entry represents a registered command.
type Entry struct {
	Name    string
	Kind    pluginpkg.Kind
	Factory pluginpkg.CommandFactory
	Source  string // "host" or the plugin module that defined it
}

// sourcer is implemented by factories that know which module defined them.
type sourcer interface {
	Source() string
}

func sourceOf(factory pluginpkg.CommandFactory) string {
	if s, ok := factory.(sourcer); ok {
		return s.Source()
	}
	return SourceHost
}
