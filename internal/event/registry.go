// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package event

import (
	"slices"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Hook names a listener method that the Registry can wire to a channel.
// Each hook has exactly one channel with the same name.
const (
	HookNew               = "on_new"
	HookLoad              = "on_load"
	HookActivated         = "on_activated"
	HookDeactivated       = "on_deactivated"
	HookPreClose          = "on_pre_close"
	HookClose             = "on_close"
	HookPreSave           = "on_pre_save"
	HookPostSave          = "on_post_save"
	HookModified          = "on_modified"
	HookSelectionModified = "on_selection_modified"
)

// hooks is the fixed order listener hooks are discovered and subscribed in.
var hooks = []string{
	HookNew,
	HookLoad,
	HookActivated,
	HookDeactivated,
	HookPreClose,
	HookClose,
	HookPreSave,
	HookPostSave,
	HookModified,
	HookSelectionModified,
}

// Hooks returns the recognized hook names in subscription order.
func Hooks() []string {
	return slices.Clone(hooks)
}

// ViewChannel is a channel whose observers receive the affected view.
type ViewChannel = Channel[pluginpkg.View]

// Registry owns one ViewChannel per recognized hook.
//
// A host creates a single Registry at startup and keeps it for the life of
// the process; channels are never torn down mid-run.
type Registry struct {
	channels map[string]*ViewChannel
}

// NewRegistry creates a Registry with an empty channel for every hook.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		channels: make(map[string]*ViewChannel, len(hooks)),
	}
	for _, hook := range hooks {
		r.channels[hook] = NewChannel[pluginpkg.View](hook, opts...)
	}
	return r
}

// Channel returns the channel for hook.
func (r *Registry) Channel(hook string) (*ViewChannel, bool) {
	ch, ok := r.channels[hook]
	return ch, ok
}

// OnNew is fired when the host creates a new document.
func (r *Registry) OnNew() *ViewChannel {
	return r.channels[HookNew]
}

// OnLoad is fired when a document finishes loading.
func (r *Registry) OnLoad() *ViewChannel {
	return r.channels[HookLoad]
}
