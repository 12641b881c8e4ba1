package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reelsmith/internal/assets"
	"reelsmith/internal/logging"
	"reelsmith/internal/notifications"
	"reelsmith/internal/organizer"
	"reelsmith/internal/planner"
	"reelsmith/internal/render"
	"reelsmith/internal/tts"
	"reelsmith/internal/voicer"
	"reelsmith/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process every queued item through the render pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			selector := assets.NewSelector(cfg)
			plan, err := planner.New(cfg, selector, logger)
			if err != nil {
				return err
			}
			stages := workflow.Stages{
				Plan:     plan,
				Voice:    voicer.New(cfg, tts.New(cfg), logger),
				Render:   render.NewStage(cfg, logger),
				Organize: organizer.New(cfg, selector.Tracker(), logger),
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := workflow.NewRunner(cfg, store, notifications.NewService(cfg), logger, stages)
			summary, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if summary.Processed == 0 && summary.Failed == 0 {
				fmt.Fprintln(out, "Queue is empty; nothing to do")
				return nil
			}
			fmt.Fprintf(out, "Batch complete: %d produced, %d failed in %s\n",
				summary.Processed, summary.Failed, summary.Duration.Round(time.Second))
			return nil
		},
	}
}
