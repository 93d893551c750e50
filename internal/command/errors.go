// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"errors"

	"github.com/samber/oops"
)

// Error codes for command dispatch failures.
const (
	CodeUnknownCommand  = "UNKNOWN_COMMAND"
	CodeCommandDisabled = "COMMAND_DISABLED"
	CodeCommandFailed   = "COMMAND_FAILED"
	CodeInvalidName     = "INVALID_COMMAND_NAME"
	CodeInvalidArgs     = "INVALID_ARGS"
	CodeInvalidPattern  = "INVALID_PATTERN"
	CodeEmptyInput      = "EMPTY_INPUT"
)

// ErrUnknownCommand creates an error for an unknown command.
func ErrUnknownCommand(cmd string) error {
	return oops.Code(CodeUnknownCommand).
		With("command", cmd).
		Errorf("unknown command: %s", cmd)
}

// ErrCommandDisabled creates an error for a command whose is_enabled returned false.
func ErrCommandDisabled(cmd string) error {
	return oops.Code(CodeCommandDisabled).
		With("command", cmd).
		Errorf("command %s is not enabled", cmd)
}

// ErrCommandFailed wraps a failure raised while constructing or running a command.
// A code already carried by cause takes precedence when read back.
func ErrCommandFailed(cmd, source string, cause error) error {
	return oops.Code(CodeCommandFailed).
		With("command", cmd).
		With("source", source).
		Wrapf(cause, "command %s failed", cmd)
}

// ErrNilRegistry is returned when NewDispatcher is called without a registry.
var ErrNilRegistry = errors.New("command registry cannot be nil")
