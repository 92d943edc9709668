package taskqueue

import (
	"context"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler enqueues jobs on a cron cadence. It only ever enqueues;
// execution stays with the worker so periodic jobs get the same retry
// behaviour as ad hoc ones.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		ctx:  ctx,
	}
}

// Add schedules a job by name with a standard 5-field cron spec. The
// payload is encoded once per firing.
func (s *Scheduler) Add(spec, name string, payload any) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx := db.ConnCtx(s.ctx)
		conn := db.DB(ctx)
		if conn == nil {
			return
		}
		defer conn.Close(ctx)

		if _, err := Enqueue(ctx, name, payload, time.Now()); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("job", name).Msg("failed to enqueue scheduled job")
		}
	})
	return err
}

// Run starts the cron loop and blocks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	return ctx.Err()
}
