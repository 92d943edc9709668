package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgtype"
	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Worker polls the queue and executes due jobs. Several polling loops run
// concurrently; SKIP LOCKED on the claim keeps them from colliding, both
// within one process and across replicas.
type Worker struct {
	registry     *Registry
	pollInterval time.Duration
	concurrency  int
	lease        time.Duration
}

func NewWorker(registry *Registry) *Worker {
	cfg := config.Config().Worker
	return &Worker{
		registry:     registry,
		pollInterval: cfg.PollInterval.Duration,
		concurrency:  cfg.Concurrency,
		lease:        cfg.Lease.Duration,
	}
}

// Run blocks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	log.Ctx(ctx).Info().
		Int("concurrency", w.concurrency).
		Dur("poll_interval", w.pollInterval).
		Strs("jobs", w.registry.Names()).
		Msg("worker starting")

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error {
			return w.poll(ctx)
		})
	}
	g.Go(func() error {
		return w.reap(ctx)
	})
	return g.Wait()
}

// reap periodically returns jobs abandoned by dead workers to the queue.
// The first pass runs immediately so a restarted worker recovers jobs it
// lost in a crash as soon as their lease expires.
func (w *Worker) reap(ctx context.Context) error {
	ticker := time.NewTicker(w.lease / 2)
	defer ticker.Stop()
	for {
		w.reclaimStale(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *Worker) reclaimStale(ctx context.Context) {
	rctx := db.ConnCtx(ctx)
	conn := db.DB(rctx)
	if conn == nil {
		return
	}
	defer conn.Close(rctx)

	n, err := conn.ReclaimStaleJobs(rctx, time.Now().Add(-w.lease))
	if err != nil {
		log.Ctx(rctx).Error().Err(err).Msg("failed to reclaim stale jobs")
		return
	}
	if n > 0 {
		log.Ctx(rctx).Warn().Int("jobs", n).Msg("reclaimed stale jobs")
	}
}

func (w *Worker) poll(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		// drain everything due before sleeping again
		for w.runOne(ctx) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// runOne claims and executes a single job, reporting whether one was
// found. Each job gets its own connection so a slow job does not hold up
// the claim path of other loops.
func (w *Worker) runOne(ctx context.Context) bool {
	jctx := db.ConnCtx(ctx)
	conn := db.DB(jctx)
	if conn == nil {
		return false
	}
	defer conn.Close(jctx)

	job, err := conn.ClaimJob(jctx, time.Now())
	if err != nil {
		if !errors.Is(err, dberror.ErrNotFound) {
			log.Ctx(jctx).Error().Err(err).Msg("failed to claim job")
		}
		return false
	}

	w.execute(jctx, job)
	return true
}

func (w *Worker) execute(ctx context.Context, job *models.Job) {
	logger := log.Ctx(ctx).With().
		Str("job", job.Name).
		Str("job_id", job.JobID.String()).
		Int("attempt", job.Attempts).
		Logger()
	ctx = logger.WithContext(ctx)

	handler, ok := w.registry.Handler(job.Name)
	if !ok {
		logger.Error().Msg("no handler registered, failing job")
		if err := db.DB(ctx).FailJob(ctx, job.JobID, ErrUnknownJob.Error()); err != nil {
			logger.Error().Err(err).Msg("failed to fail job")
		}
		return
	}

	var payload []byte
	if job.Payload.Status == pgtype.Present {
		payload = job.Payload.Bytes
	}

	start := time.Now()
	err := runHandler(ctx, handler, payload)
	if err == nil {
		if err := db.DB(ctx).CompleteJob(ctx, job.JobID); err != nil {
			logger.Error().Err(err).Msg("failed to complete job")
			return
		}
		logger.Info().Dur("elapsed", time.Since(start)).Msg("job succeeded")
		return
	}

	if job.Attempts >= job.MaxAttempts {
		logger.Error().Err(err).Msg("job failed permanently")
		if err := db.DB(ctx).FailJob(ctx, job.JobID, err.Error()); err != nil {
			logger.Error().Err(err).Msg("failed to fail job")
		}
		return
	}

	delay := Backoff(job.Attempts)
	logger.Warn().Err(err).Dur("retry_in", delay).Msg("job failed, scheduling retry")
	if err := db.DB(ctx).RetryJob(ctx, job.JobID, time.Now().Add(delay), err.Error()); err != nil {
		logger.Error().Err(err).Msg("failed to schedule retry")
	}
}

// runHandler turns a handler panic into an error so one bad job cannot
// take the worker down.
func runHandler(ctx context.Context, handler Handler, payload []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = ErrQueue.Msg(fmt.Sprintf("job panicked: %v", r))
		}
	}()
	return handler(ctx, payload)
}
