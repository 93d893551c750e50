// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

// Package xdg provides XDG Base Directory paths for Quill.
package xdg

import (
	"os"
	"path/filepath"

	"github.com/samber/oops"
)

const appName = "quill"

// ConfigFileName is the name of the config file inside ConfigDir.
const ConfigFileName = "quill.yaml"

// ConfigDir returns the XDG config directory for quill.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	return dir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for quill.
// Checks XDG_DATA_HOME first, falls back to ~/.local/share.
func DataDir() string {
	return dir("XDG_DATA_HOME", ".local", "share")
}

// StateDir returns the XDG state directory for quill.
// Checks XDG_STATE_HOME first, falls back to ~/.local/state.
func StateDir() string {
	return dir("XDG_STATE_HOME", ".local", "state")
}

// PluginsDir is the default plugin search root.
func PluginsDir() string {
	return filepath.Join(DataDir(), "plugins")
}

// ConfigFile is the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

func dir(env string, fallback ...string) string {
	base := os.Getenv(env)
	if base == "" {
		base = filepath.Join(append([]string{os.Getenv("HOME")}, fallback...)...)
	}
	return filepath.Join(base, appName)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
// Directories are created with 0700 permissions.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return oops.With("path", path).Wrapf(err, "create directory")
	}
	return nil
}
