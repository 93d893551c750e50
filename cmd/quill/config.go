// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/quillhost/quill/internal/logging"
	"github.com/quillhost/quill/internal/xdg"
)

// Config is the host configuration, read from quill.yaml and overridden by
// command-line flags.
type Config struct {
	Plugins PluginsConfig `koanf:"plugins"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// PluginsConfig lists the plugin search roots, first match wins.
type PluginsConfig struct {
	Paths []string `koanf:"paths"`
}

// LogConfig selects the log format (json or text) and level.
type LogConfig struct {
	Format string `koanf:"format"`
	Level  string `koanf:"level"`
}

// MetricsConfig is the observability listen address; empty disables it.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

// Default values for flags.
const (
	defaultLogFormat   = "text"
	defaultLogLevel    = "info"
	defaultMetricsAddr = "127.0.0.1:9464"
)

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"plugin-path":  "plugins.paths",
	"log-format":   "log.format",
	"log-level":    "log.level",
	"metrics-addr": "metrics.addr",
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Plugins.Paths) == 0 {
		return oops.Code("INVALID_CONFIG").Errorf("plugins.paths must name at least one directory")
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return oops.Code("INVALID_CONFIG").
			With("log.format", c.Log.Format).
			Errorf("log.format must be 'json' or 'text', got %q", c.Log.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// loadConfig reads path (or the XDG default when path is empty) and
// applies flags on top. Flags the user did not set only fill keys the file
// leaves out. A missing default file is not an error; a missing explicit
// one is.
func loadConfig(flags *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = xdg.ConfigFile()
	}
	if explicit || fileExists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("INVALID_CONFIG").With("path", path).Wrapf(err, "load config")
		}
	}

	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, oops.Code("INVALID_CONFIG").Wrapf(err, "load flags")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.Code("INVALID_CONFIG").Wrapf(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
