package taskqueue

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/procat-rse/procatsrv/internal/config"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// Handler executes one job. The payload is the JSON the job was enqueued
// with. A nil error marks the job succeeded; any error schedules a retry
// until the job runs out of attempts.
type Handler func(ctx context.Context, payload []byte) error

// Registry maps job names to handlers. Jobs with no registered handler
// fail permanently rather than burn retries.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = handler
}

func (r *Registry) Handler(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[name]
	return handler, ok
}

// Names lists the registered job names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Enqueue puts a job on the queue, due at runAt. The payload is JSON
// encoded; pass nil for jobs that need none.
func Enqueue(ctx context.Context, name string, payload any, runAt time.Time) (*models.Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, ErrBadPayload.Err(err)
	}

	job := &models.Job{
		Name:        name,
		RunAt:       runAt,
		MaxAttempts: config.Config().Worker.MaxAttempts,
	}
	if err := job.Payload.Set(data); err != nil {
		return nil, ErrBadPayload.Err(err)
	}

	if err := db.DB(ctx).InsertJob(ctx, job); err != nil {
		return nil, ErrQueue.Err(err)
	}
	log.Ctx(ctx).Info().
		Str("job", name).
		Str("job_id", job.JobID.String()).
		Time("run_at", runAt).
		Msg("enqueued job")
	return job, nil
}
