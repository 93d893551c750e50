// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package plugin

import (
	"github.com/samber/oops"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// Error codes for plugin registration failures.
const (
	CodeMemberRegistrationFailed = "MEMBER_REGISTRATION_FAILED"
	CodeInvalidManifest          = "INVALID_MANIFEST"
	CodeMissingTarget            = "MISSING_TARGET"
)

// ErrMemberRegistration wraps the failure of one exported class.
func ErrMemberRegistration(module, member string, kind pluginpkg.Kind, cause error) error {
	return oops.In("plugin").
		Code(CodeMemberRegistrationFailed).
		With("module", module).
		With("member", member).
		With("kind", kind.String()).
		Wrapf(cause, "register %s.%s", module, member)
}

// ErrInvalidManifest creates an error for a plugin.yaml that fails to parse or validate.
func ErrInvalidManifest(path string, cause error) error {
	return oops.In("plugin").
		Code(CodeInvalidManifest).
		With("path", path).
		Hint("see quill gen-schema output for the manifest format").
		Wrap(cause)
}

// ErrMissingTarget creates an error for a command constructed without the handle its kind needs.
func ErrMissingTarget(command string, kind pluginpkg.Kind) error {
	return oops.In("plugin").
		Code(CodeMissingTarget).
		With("command", command).
		With("kind", kind.String()).
		Errorf("%s %s needs a %s", kind, command, targetName(kind))
}

func targetName(kind pluginpkg.Kind) string {
	switch kind {
	case pluginpkg.KindTextCommand:
		return "view"
	case pluginpkg.KindWindowCommand:
		return "window"
	default:
		return "target"
	}
}
