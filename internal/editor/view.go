// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package editor

import (
	"os"
	"slices"

	"github.com/samber/oops"

	"github.com/quillhost/quill/internal/event"
)

// View is a pluginpkg.View over an in-memory rune buffer.
type View struct {
	id       string
	name     string
	text     []rune
	window   *Window
	modified bool
}

// ID implements pluginpkg.View.
func (v *View) ID() string {
	return v.id
}

// FileName implements pluginpkg.View. Unsaved new files return "".
func (v *View) FileName() string {
	return v.name
}

// Size implements pluginpkg.View.
func (v *View) Size() int {
	return len(v.text)
}

// Text returns the whole buffer.
func (v *View) Text() string {
	return string(v.text)
}

// Modified reports whether the buffer changed since it was opened or saved.
func (v *View) Modified() bool {
	return v.modified
}

// Window returns the window holding v.
func (v *View) Window() *Window {
	return v.window
}

// Substr implements pluginpkg.View. Offsets are clamped to the buffer.
func (v *View) Substr(start, end int) string {
	start = max(0, min(start, len(v.text)))
	end = max(start, min(end, len(v.text)))
	return string(v.text[start:end])
}

// Insert implements pluginpkg.View and fires on_modified.
func (v *View) Insert(at int, text string) (int, error) {
	if at < 0 || at > len(v.text) {
		return 0, oops.Code(CodeOutOfRange).
			With("view", v.id).
			With("offset", at).
			With("size", len(v.text)).
			Errorf("insert offset %d outside 0..%d", at, len(v.text))
	}
	r := []rune(text)
	v.text = slices.Insert(v.text, at, r...)
	v.changed()
	return len(r), nil
}

// Erase implements pluginpkg.View and fires on_modified.
func (v *View) Erase(start, end int) error {
	if start < 0 || end > len(v.text) || start > end {
		return oops.Code(CodeOutOfRange).
			With("view", v.id).
			With("start", start).
			With("end", end).
			With("size", len(v.text)).
			Errorf("erase region %d..%d outside 0..%d", start, end, len(v.text))
	}
	v.text = append(v.text[:start], v.text[end:]...)
	v.changed()
	return nil
}

func (v *View) changed() {
	v.modified = true
	v.window.editor.fire(event.HookModified, v)
}

// SaveAs writes the buffer to path, firing on_pre_save before and
// on_post_save after the write.
func (v *View) SaveAs(path string) error {
	v.name = path
	v.window.editor.fire(event.HookPreSave, v)
	if err := os.WriteFile(path, []byte(string(v.text)), 0o600); err != nil {
		return oops.Code(CodeIO).With("path", path).Wrap(err)
	}
	v.modified = false
	v.window.editor.fire(event.HookPostSave, v)
	return nil
}

// Save writes the buffer back to its file name.
func (v *View) Save() error {
	if v.name == "" {
		return oops.Code(CodeIO).With("view", v.id).Errorf("view has no file name")
	}
	return v.SaveAs(v.name)
}
