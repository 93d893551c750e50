// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"regexp"
	"strings"

	"github.com/samber/oops"
)

const (
	// MaxNameLength is the maximum length for command names.
	MaxNameLength = 64
)

// namePattern validates command names: an identifier as written in plugin source.
var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateCommandName validates a command name.
func ValidateCommandName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return oops.Code(CodeInvalidName).
			Errorf("command name cannot be empty")
	}

	if len(trimmed) > MaxNameLength {
		return oops.Code(CodeInvalidName).
			With("length", len(trimmed)).
			With("max", MaxNameLength).
			Errorf("command name exceeds maximum length of %d", MaxNameLength)
	}

	if trimmed != name || !namePattern.MatchString(name) {
		return oops.Code(CodeInvalidName).
			With("name", name).
			Errorf("command name must start with a letter or underscore and contain only letters, digits, or underscores")
	}

	return nil
}
