// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/quillhost/quill/internal/command"
	"github.com/quillhost/quill/internal/editor"
	pluginpkg "github.com/quillhost/quill/pkg/plugin"
)

// NewPluginsCmd creates the plugins command group.
func NewPluginsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect and run plugins",
	}
	cmd.AddCommand(newPluginsListCmd(a))
	cmd.AddCommand(newPluginsRunCmd(a))
	return cmd
}

func newPluginsListCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load every plugin and print the registered commands and listeners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := openHost(cmd.Context(), a.cfg.Plugins.Paths, a.logger)
			if err != nil {
				return err
			}
			defer h.Close()

			entries := h.commands.All()
			if filter != "" {
				if entries, err = h.commands.Match(filter); err != nil {
					return err
				}
			}

			printFailures(cmd.ErrOrStderr(), h)
			return printTable(cmd.OutOrStdout(), entries, h)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only list commands whose name matches this glob")
	return cmd
}

func printFailures(w io.Writer, h *host) {
	for _, r := range h.failures() {
		fmt.Fprintf(w, "plugin %s: %v\n", r.Module, r.Error())
	}
}

func printTable(w io.Writer, entries []command.Entry, h *host) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COMMAND\tKIND\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Kind, e.Source)
	}

	listeners := h.core.Registrar.Listeners()
	if len(listeners) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "LISTENER\tHOOKS")
		for _, l := range listeners {
			fmt.Fprintf(tw, "%s.%s\t%s\n", l.Module, l.Name, strings.Join(l.Hooks, ","))
		}
	}
	return tw.Flush()
}

func newPluginsRunCmd(a *app) *cobra.Command {
	var (
		path  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "run <command> [key=value...]",
		Short: "Run a command against a fresh editor window and print the view text",
		Long: `Run loads every plugin, opens a window holding --file (or an empty
view), runs the named command with the given arguments and prints the
resulting text of the active view.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			h, err := openHost(ctx, a.cfg.Plugins.Paths, a.logger)
			if err != nil {
				return err
			}
			defer h.Close()
			printFailures(cmd.ErrOrStderr(), h)

			window := h.editor.NewWindow()
			var view *editor.View
			if path != "" {
				if view, err = window.OpenFile(path); err != nil {
					return err
				}
			} else {
				view = window.NewFile()
			}

			cmdArgs, err := command.ParseArgs(args[1:])
			if err != nil {
				return err
			}
			target := pluginpkg.Target{Window: window, View: view}
			if err := h.dispatcher.Run(ctx, args[0], target, cmdArgs); err != nil {
				return err
			}

			if write && path != "" {
				if err := view.Save(); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), view.Text())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "file to open before running the command")
	cmd.Flags().BoolVar(&write, "write", false, "save the view back to --file afterwards")
	return cmd
}
