// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package module

import (
	"github.com/samber/oops"
)

// Error codes for module resolution and loading.
const (
	CodeModuleNotFound  = "MODULE_NOT_FOUND"
	CodeExecutionFailed = "MODULE_EXECUTION_FAILED"
	CodeImportCycle     = "IMPORT_CYCLE"
)

// ErrModuleNotFound creates an error for a name no search root provides.
func ErrModuleNotFound(name string, roots []string) error {
	return oops.In("module").
		Code(CodeModuleNotFound).
		With("module", name).
		With("roots", roots).
		Errorf("no module named %q", name)
}

// ErrExecutionFailed wraps a compile or runtime failure of a module body.
func ErrExecutionFailed(name, path, traceback string, cause error) error {
	return oops.In("module").
		Code(CodeExecutionFailed).
		With("module", name).
		With("path", path).
		With("lua_traceback", traceback).
		Hint("check the plugin source for errors").
		Wrap(cause)
}

// ErrImportCycle creates an error for a module requested while it is still executing.
func ErrImportCycle(name string, chain []string) error {
	return oops.In("module").
		Code(CodeImportCycle).
		With("module", name).
		With("chain", chain).
		Errorf("import cycle while loading %q", name)
}
