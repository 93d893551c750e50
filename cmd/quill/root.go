// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quillhost/quill/internal/logging"
	"github.com/quillhost/quill/internal/xdg"
)

// app carries state resolved once by the root command for its subcommands.
type app struct {
	configFile string
	cfg        *Config
	logger     *slog.Logger
}

// NewRootCmd creates the root command for the quill CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "Quill - a Lua plugin host",
		Long: `Quill loads Lua plugins from a set of search roots, registers the
commands and event listeners they define, and runs them against an
in-memory editor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.Setup(logging.Options{
				Service: "quill",
				Version: cmd.Root().Version,
				Format:  cfg.Log.Format,
				Level:   cfg.Level(),
				Writer:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/quill/quill.yaml)")
	flags.StringSlice("plugin-path", []string{xdg.PluginsDir()}, "plugin search roots, searched in order")
	flags.String("log-format", defaultLogFormat, "log format (json or text)")
	flags.String("log-level", defaultLogLevel, "log level (debug, info, warn, error)")

	cmd.AddCommand(NewPluginsCmd(a))
	cmd.AddCommand(NewServeCmd(a))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// NewVersionCmd creates the version subcommand.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the quill version",
		Args:  cobra.NoArgs,
		// Skip config loading.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quill %s\n", cmd.Root().Version)
		},
	}
}
