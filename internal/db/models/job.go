package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
	"github.com/procat-rse/procatsrv/internal/types"
)

/*
   Column     |           Type           | Collation | Nullable |      Default
--------------+--------------------------+-----------+----------+--------------------
 job_id       | uuid                     |           | not null | uuid_generate_v4()
 name         | character varying(128)   |           | not null |
 payload      | jsonb                    |           | not null | '{}'
 status       | character varying(16)    |           | not null | 'pending'
 run_at       | timestamp with time zone |           | not null | now()
 attempts     | integer                  |           | not null | 0
 max_attempts | integer                  |           | not null | 3
 last_error   | text                     |           |          |
 created_at   | timestamp with time zone |           | not null | now()
 updated_at   | timestamp with time zone |           | not null | now()
Indexes:
    "jobs_pkey" PRIMARY KEY, btree (job_id)
    "jobs_claim_idx" btree (status, run_at)
*/

// Job is one unit of background work on the queue.
type Job struct {
	JobID       uuid.UUID       `db:"job_id"`
	Name        string          `db:"name"`
	Payload     pgtype.JSONB    `db:"payload"`
	Status      types.JobStatus `db:"status"`
	RunAt       time.Time       `db:"run_at"`
	Attempts    int             `db:"attempts"`
	MaxAttempts int             `db:"max_attempts"`
	LastError   string          `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
