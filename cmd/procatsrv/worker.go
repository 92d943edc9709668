package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/procat-rse/procatsrv/internal/clockify"
	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/notify"
	"github.com/procat-rse/procatsrv/internal/taskqueue"
	"github.com/procat-rse/procatsrv/internal/tasks"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var flagNoSchedule bool

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background job worker and scheduler",
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().BoolVar(&flagNoSchedule, "no-schedule", false, "Process jobs without enqueuing scheduled ones")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Init(ctx, config.Config().DB.DSN); err != nil {
		return err
	}

	registry := taskqueue.NewRegistry()
	t := tasks.New(notify.NewMailer(), clockify.NewClient())
	t.Register(registry)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return taskqueue.NewWorker(registry).Run(ctx)
	})
	if !flagNoSchedule {
		scheduler := taskqueue.NewScheduler(ctx)
		if err := t.Schedule(scheduler); err != nil {
			return err
		}
		g.Go(func() error {
			return scheduler.Run(ctx)
		})
	}

	log.Info().Strs("jobs", registry.Names()).Msg("worker started")
	return g.Wait()
}
