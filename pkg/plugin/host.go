// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

// Window is a host window handle. The plugin core only passes it through.
type Window interface {
	ID() string
	// ActiveView returns the focused view, or nil when the window is empty.
	ActiveView() View
	Views() []View
}

// View is a host document view handle.
// Positions are rune offsets into the view's text.
type View interface {
	ID() string
	FileName() string
	Size() int
	Substr(start, end int) string
	// Insert places text at the given offset and returns the number of runes inserted.
	Insert(at int, text string) (int, error)
	Erase(start, end int) error
}
