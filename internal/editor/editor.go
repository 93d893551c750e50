// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package editor is a small in-memory host: windows holding text views that
// fire lifecycle events as documents are created, loaded, edited, saved and
// closed. The CLI and tests use it to run plugin commands end to end.
//
// Editor is not goroutine-safe.
package editor

import (
	"log/slog"
	"os"
	"slices"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/quillhost/quill/internal/event"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Error codes for editor operations.
const (
	CodeOutOfRange = "OUT_OF_RANGE"
	CodeIO         = "EDITOR_IO"
)

// Editor owns windows and the event registry their views fire into.
type Editor struct {
	events  *event.Registry
	windows []*Window
	logger  *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = l
	}
}

// New creates an editor firing lifecycle events into events.
func New(events *event.Registry, opts ...Option) *Editor {
	e := &Editor{events: events, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Events returns the registry views fire into.
func (e *Editor) Events() *event.Registry {
	return e.events
}

// NewWindow opens an empty window.
func (e *Editor) NewWindow() *Window {
	w := &Window{id: ulid.Make().String(), editor: e}
	e.windows = append(e.windows, w)
	return w
}

// Windows returns the open windows in creation order.
func (e *Editor) Windows() []*Window {
	return slices.Clone(e.windows)
}

func (e *Editor) fire(hook string, v *View) {
	ch, ok := e.events.Channel(hook)
	if !ok {
		return
	}
	e.logger.Debug("firing view event", "hook", hook, "view", v.id)
	ch.Fire(v)
}

// Window is a pluginpkg.Window holding an ordered list of views.
type Window struct {
	id     string
	editor *Editor
	views  []*View
	active *View
}

// ID implements pluginpkg.Window.
func (w *Window) ID() string {
	return w.id
}

// ActiveView implements pluginpkg.Window. It returns nil for an empty window.
func (w *Window) ActiveView() pluginpkg.View {
	if w.active == nil {
		return nil
	}
	return w.active
}

// Views implements pluginpkg.Window.
func (w *Window) Views() []pluginpkg.View {
	out := make([]pluginpkg.View, 0, len(w.views))
	for _, v := range w.views {
		out = append(out, v)
	}
	return out
}

// NewFile creates an empty unnamed view, fires on_new and focuses it.
func (w *Window) NewFile() *View {
	v := w.add("", nil)
	w.editor.fire(event.HookNew, v)
	w.Focus(v)
	return v
}

// Open creates a view holding content under name, fires on_load and focuses it.
func (w *Window) Open(name, content string) *View {
	v := w.add(name, []rune(content))
	w.editor.fire(event.HookLoad, v)
	w.Focus(v)
	return v
}

// OpenFile reads path from disk and opens it.
func (w *Window) OpenFile(path string) (*View, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, oops.Code(CodeIO).With("path", path).Wrap(err)
	}
	return w.Open(path, string(data)), nil
}

func (w *Window) add(name string, text []rune) *View {
	v := &View{id: ulid.Make().String(), name: name, text: text, window: w}
	w.views = append(w.views, v)
	return v
}

// Focus makes v the active view, firing on_deactivated for the previous
// active view and on_activated for v.
func (w *Window) Focus(v *View) {
	if w.active == v {
		return
	}
	if prev := w.active; prev != nil {
		w.editor.fire(event.HookDeactivated, prev)
	}
	w.active = v
	w.editor.fire(event.HookActivated, v)
}

// Close fires on_pre_close, removes v from the window and fires on_close.
func (w *Window) Close(v *View) {
	i := slices.Index(w.views, v)
	if i < 0 {
		return
	}
	w.editor.fire(event.HookPreClose, v)
	w.views = slices.Delete(w.views, i, i+1)
	if w.active == v {
		w.active = nil
		if len(w.views) > 0 {
			w.Focus(w.views[len(w.views)-1])
		}
	}
	w.editor.fire(event.HookClose, v)
}
