// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package module resolves dotted plugin module names to files under a list
// of search roots and loads them into a Lua runtime exactly once.
//
// A name such as "foo.bar" resolves to foo/bar.lua under the first root that
// has it. A directory with no source file of its own loads as an empty
// namespace module so deeper names beneath it still resolve.
//
// Loader is not goroutine-safe; callers serialize access.
package module
