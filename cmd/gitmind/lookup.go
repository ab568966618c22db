// cmd/gitmind/lookup.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gitmind-explorer/internal/config"
	custom_errors "gitmind-explorer/internal/errors"
)

func lookupCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "lookup [username]",
		Short: "Show a GitHub profile, its recent repositories and an AI summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger := newLogger(os.Stderr, cfg.LogLevel)

			comps, err := newComponents(cfg, logger)
			if err != nil {
				return err
			}
			o := comps.newOrchestrator(logger)
			defer o.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
			defer cancelTimeout()

			run := o.Submit(ctx, args[0])
			if run == nil {
				return custom_errors.ErrInputEmpty
			}

			out := cmd.OutOrStdout()
			select {
			case <-run.Loaded():
			case <-ctx.Done():
				return ctx.Err()
			}
			state := o.Snapshot()
			if state.HasError() {
				renderError(out, state)
				return fmt.Errorf("lookup of %q failed: %s", args[0], state.ErrorKind)
			}
			renderProfile(out, state)
			renderAnalyzing(out)

			select {
			case <-run.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
			renderInsight(out, o.Snapshot())
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Give up after this long")
	return cmd
}
