// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Quill Contributors

package main

import (
	"context"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quillhost/quill/internal/command"
	"github.com/quillhost/quill/internal/event"
	"github.com/quillhost/quill/internal/observability"
	"github.com/quillhost/quill/internal/plugin"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless host with metrics and health endpoints",
		Long: `Serve loads every plugin and keeps the host running until interrupted,
exposing /metrics, /healthz/liveness and /healthz/readiness on --metrics-addr.
Readiness turns green once plugin loading has finished.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}

	cmd.Flags().String("metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	return cmd
}

// serve blocks until ctx is done.
func (a *app) serve(ctx context.Context) error {
	var ready atomic.Bool

	var server *observability.Server
	if addr := a.cfg.Metrics.Addr; addr != "" {
		server = observability.NewServer(addr, ready.Load,
			plugin.RegisterMetrics,
			event.RegisterMetrics,
			command.RegisterMetrics,
		)
		errCh, err := server.Start()
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				a.logger.Warn("stopping observability server", "error", err)
			}
		}()
		go func() {
			for err := range errCh {
				a.logger.Error("observability server failed", "error", err)
			}
		}()
	}

	h, err := openHost(ctx, a.cfg.Plugins.Paths, a.logger)
	if err != nil {
		return err
	}
	defer h.Close()

	ready.Store(true)
	a.logger.Info("host ready",
		"plugins", len(h.reports),
		"failed", len(h.failures()),
		"commands", len(h.commands.All()),
	)

	<-ctx.Done()
	a.logger.Info("shutting down")
	return nil
}
