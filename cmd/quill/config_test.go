// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhost/quill/pkg/errutil"
)

// rootFlags returns the root command's persistent flags parsed from args.
func rootFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := NewRootCmd().PersistentFlags()
	require.NoError(t, flags.Parse(args))
	return flags
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quill.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const sampleConfig = `
plugins:
  paths: [/srv/a, /srv/b]
log:
  format: json
  level: warn
`

func TestLoadConfig_FileBeatsFlagDefaults(t *testing.T) {
	cfg, err := loadConfig(rootFlags(t), writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, []string{"/srv/a", "/srv/b"}, cfg.Plugins.Paths)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
}

func TestLoadConfig_FlagsBeatFile(t *testing.T) {
	flags := rootFlags(t, "--log-level", "debug", "--plugin-path", "/x")

	cfg, err := loadConfig(flags, writeConfig(t, sampleConfig))

	require.NoError(t, err)
	assert.Equal(t, []string{"/x"}, cfg.Plugins.Paths)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	cfg, err := loadConfig(rootFlags(t), "")

	require.NoError(t, err)
	assert.Equal(t, []string{"/data/quill/plugins"}, cfg.Plugins.Paths)
	assert.Equal(t, defaultLogFormat, cfg.Log.Format)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
}

func TestLoadConfig_DefaultFileIsRead(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "quill"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, "quill", "quill.yaml"), []byte(sampleConfig), 0o600))

	cfg, err := loadConfig(rootFlags(t), "")

	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(rootFlags(t), filepath.Join(t.TempDir(), "nope.yaml"))

	errutil.AssertErrorCode(t, err, "INVALID_CONFIG")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"bad format", "log:\n  format: xml\n", "INVALID_CONFIG"},
		{"bad level", "log:\n  level: loud\n", "INVALID_LOG_LEVEL"},
		{"no paths", "plugins:\n  paths: []\n", "INVALID_CONFIG"},
		{"bad yaml", "plugins: [\n", "INVALID_CONFIG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(rootFlags(t), writeConfig(t, tt.body))
			errutil.AssertErrorCode(t, err, tt.code)
		})
	}
}
