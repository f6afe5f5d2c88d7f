package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arno-dev/postagent-mcp/internal/app"
)

const telemetryFlushTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	addListenFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, cmd.ErrOrStderr())
	if err != nil {
		return exitError(exitFailure, "%v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetryFlushTimeout)
		defer cancel()
		if err := a.Close(flushCtx); err != nil {
			a.Logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		return exitError(exitFailure, "%v", err)
	}
	return nil
}
