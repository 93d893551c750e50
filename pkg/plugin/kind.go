// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package plugin defines the types shared between a Quill host and the plugin core.
package plugin

// Kind identifies which extension category a plugin type belongs to.
type Kind uint8

// Extension kinds recognized by the plugin core.
const (
	KindApplicationCommand Kind = iota + 1
	KindWindowCommand
	KindTextCommand
	KindEventListener
)

// String returns the string representation of a Kind.
// Unrecognized kinds return "unknown".
func (k Kind) String() string {
	switch k {
	case KindApplicationCommand:
		return "application_command"
	case KindWindowCommand:
		return "window_command"
	case KindTextCommand:
		return "text_command"
	case KindEventListener:
		return "event_listener"
	default:
		return "unknown"
	}
}

// IsCommand reports whether k is one of the command variants.
func (k Kind) IsCommand() bool {
	return k == KindApplicationCommand || k == KindWindowCommand || k == KindTextCommand
}
