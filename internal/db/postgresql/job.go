package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

const jobColumns = `job_id, name, payload, status, run_at, attempts, max_attempts, COALESCE(last_error, ''), created_at, updated_at`

func scanJob(row pgx.Row, job *models.Job) error {
	return row.Scan(
		&job.JobID,
		&job.Name,
		&job.Payload,
		&job.Status,
		&job.RunAt,
		&job.Attempts,
		&job.MaxAttempts,
		&job.LastError,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
}

// InsertJob enqueues a job and fills in its generated ID.
func (p *proCatDb) InsertJob(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (name, payload, status, run_at, max_attempts)
		VALUES ($1, $2, 'pending', $3, $4)
		RETURNING job_id, created_at, updated_at;
	`
	err := p.conn.QueryRow(ctx, query, job.Name, job.Payload, job.RunAt, job.MaxAttempts).
		Scan(&job.JobID, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		log.Ctx(ctx).Info().Str("name", job.Name).Msg("failed to insert job")
		return dberror.Map(err)
	}
	return nil
}

// ClaimJob atomically claims the next due pending job. SKIP LOCKED keeps
// concurrent workers from claiming the same row; a worker that dies mid
// job leaves it running until ReclaimStaleJobs returns it to the queue,
// so execution is at least once.
func (p *proCatDb) ClaimJob(ctx context.Context, now time.Time) (*models.Job, error) {
	query := `
		UPDATE jobs
		SET status = 'running', attempts = attempts + 1, updated_at = now()
		WHERE job_id = (
			SELECT job_id
			FROM jobs
			WHERE status = 'pending' AND run_at <= $1
			ORDER BY run_at
			FOR UPDATE SKIP LOCKED
			LIMIT 1
		)
		RETURNING ` + jobColumns + `;
	`
	var job models.Job
	err := scanJob(p.conn.QueryRow(ctx, query, now), &job)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("no pending jobs")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &job, nil
}

// CompleteJob marks a job as succeeded.
func (p *proCatDb) CompleteJob(ctx context.Context, jobID uuid.UUID) error {
	query := `
		UPDATE jobs
		SET status = 'succeeded', last_error = NULL, updated_at = now()
		WHERE job_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, jobID)
	if err != nil {
		return dberror.Map(err)
	}
	return nil
}

// RetryJob returns a failed attempt to the queue with a new run time.
func (p *proCatDb) RetryJob(ctx context.Context, jobID uuid.UUID, runAt time.Time, lastError string) error {
	query := `
		UPDATE jobs
		SET status = 'pending', run_at = $2, last_error = $3, updated_at = now()
		WHERE job_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, jobID, runAt, lastError)
	if err != nil {
		return dberror.Map(err)
	}
	return nil
}

// ReclaimStaleJobs returns running jobs whose claim went stale to the
// queue. A worker that dies mid job never reaches CompleteJob, so a job
// still running past its lease is treated as lost: requeued while
// attempts remain, failed otherwise. Returns the number of jobs touched.
func (p *proCatDb) ReclaimStaleJobs(ctx context.Context, staleBefore time.Time) (int, error) {
	query := `
		UPDATE jobs
		SET status = CASE WHEN attempts < max_attempts THEN 'pending' ELSE 'failed' END,
		    last_error = 'worker lost', updated_at = now()
		WHERE status = 'running' AND updated_at < $1;
	`
	tag, err := p.conn.Exec(ctx, query, staleBefore)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to reclaim stale jobs")
		return 0, dberror.Map(err)
	}
	return int(tag), nil
}

// FailJob marks a job as permanently failed.
func (p *proCatDb) FailJob(ctx context.Context, jobID uuid.UUID, lastError string) error {
	query := `
		UPDATE jobs
		SET status = 'failed', last_error = $2, updated_at = now()
		WHERE job_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, jobID, lastError)
	if err != nil {
		return dberror.Map(err)
	}
	return nil
}

// GetJob retrieves a job by ID.
func (p *proCatDb) GetJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		WHERE job_id = $1;
	`
	var job models.Job
	err := scanJob(p.conn.QueryRow(ctx, query, jobID), &job)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("job not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &job, nil
}

// DeleteJob removes a job from the queue.
func (p *proCatDb) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	query := `
		DELETE FROM jobs
		WHERE job_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, jobID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("job_id", jobID.String()).Msg("failed to delete job")
		return dberror.Map(err)
	}
	return nil
}

// ListJobs returns jobs newest first with limit/offset pagination.
func (p *proCatDb) ListJobs(ctx context.Context, limit, offset int) ([]models.Job, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM jobs
		ORDER BY created_at DESC
		LIMIT NULLIF($1, 0) OFFSET $2;
	`
	rows, err := p.conn.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		err := rows.Scan(
			&job.JobID,
			&job.Name,
			&job.Payload,
			&job.Status,
			&job.RunAt,
			&job.Attempts,
			&job.MaxAttempts,
			&job.LastError,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
