// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package command

import (
	"strconv"
	"strings"

	"github.com/samber/oops"

	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// ParsedCommand represents a parsed command input.
type ParsedCommand struct {
	Name string         // command name (first whitespace-delimited token)
	Args pluginpkg.Args // key=value arguments
	Raw  string         // original input
}

// Parse splits raw input into a command name and arguments.
// The command name is the first whitespace-delimited token. Each following
// token is key=value, or a bare key that sets the argument to true. Values
// that read as booleans or numbers are converted.
func Parse(input string) (*ParsedCommand, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return nil, oops.Code(CodeEmptyInput).Errorf("no command provided")
	}

	args, err := ParseArgs(fields[1:])
	if err != nil {
		return nil, oops.With("command", fields[0]).Wrap(err)
	}

	return &ParsedCommand{
		Name: fields[0],
		Args: args,
		Raw:  input,
	}, nil
}

// ParseArgs converts already-split tokens into arguments. Each token is
// key=value, split on the first "=", or a bare key that sets the argument
// to true. Values are kept whole, so a token may contain whitespace.
func ParseArgs(tokens []string) (pluginpkg.Args, error) {
	args := pluginpkg.Args{}
	for _, token := range tokens {
		key, value, found := strings.Cut(token, "=")
		if key == "" {
			return nil, oops.Code(CodeInvalidArgs).
				With("argument", token).
				Errorf("argument %q has no name", token)
		}
		if !found {
			args[key] = true
			continue
		}
		args[key] = parseValue(value)
	}
	return args, nil
}

func parseValue(s string) any {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
