// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package lua hosts the Lua state plugin modules execute in.
//
// A Runtime owns one sandboxed gopher-lua state for the life of the process,
// the global quill table plugins program against, and the extension base
// classes (Command, ApplicationCommand, WindowCommand, TextCommand,
// EventListener). Plugin classes are plain tables built with quill.class:
//
//	local Hello = quill.class(quill.TextCommand)
//
//	function Hello:run(args)
//	    self.view:insert(0, "hello")
//	end
//
// The Runtime is not goroutine-safe; callers serialize access.
package lua
