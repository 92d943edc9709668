package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// TimeEntryFilter narrows ListTimeEntries. Zero values are ignored.
type TimeEntryFilter struct {
	ProjectID    uuid.UUID
	UserID       uuid.UUID
	From         time.Time // start_time >= From
	To           time.Time // start_time < To
	UnbilledOnly bool      // only entries without a monthly charge
	Limit        int
	Offset       int
}

// CreateTimeEntry inserts a time entry and fills in its generated ID.
func (p *proCatDb) CreateTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (user_id, project_id, start_time, end_time, clockify_id)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING time_entry_id;
	`
	err := p.conn.QueryRow(ctx, query,
		entry.UserID, entry.ProjectID, entry.StartTime, entry.EndTime, entry.ClockifyID,
	).Scan(&entry.TimeEntryID)
	if err != nil {
		log.Ctx(ctx).Info().Str("project_id", entry.ProjectID.String()).Msg("failed to insert time entry")
		return dberror.Map(err)
	}
	return nil
}

// UpsertTimeEntry inserts a time entry or, when one with the same
// Clockify ID exists, updates its times and project. Used by the Clockify
// sync so re-running it is idempotent.
func (p *proCatDb) UpsertTimeEntry(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (user_id, project_id, start_time, end_time, clockify_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (clockify_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    project_id = EXCLUDED.project_id,
		    start_time = EXCLUDED.start_time,
		    end_time = EXCLUDED.end_time
		RETURNING time_entry_id;
	`
	err := p.conn.QueryRow(ctx, query,
		entry.UserID, entry.ProjectID, entry.StartTime, entry.EndTime, entry.ClockifyID,
	).Scan(&entry.TimeEntryID)
	if err != nil {
		log.Ctx(ctx).Info().Str("clockify_id", entry.ClockifyID).Msg("failed to upsert time entry")
		return dberror.Map(err)
	}
	return nil
}

// ListTimeEntries returns time entries matching the filter, ordered by
// start time.
func (p *proCatDb) ListTimeEntries(ctx context.Context, filter TimeEntryFilter) ([]models.TimeEntry, error) {
	query := `
		SELECT time_entry_id, user_id, project_id, start_time, end_time, COALESCE(clockify_id, ''), monthly_charge
		FROM time_entries
		WHERE ($1::uuid IS NULL OR project_id = $1)
		  AND ($2::uuid IS NULL OR user_id = $2)
		  AND ($3::timestamptz IS NULL OR start_time >= $3)
		  AND ($4::timestamptz IS NULL OR start_time < $4)
		  AND (NOT $5 OR monthly_charge IS NULL)
		ORDER BY start_time
		LIMIT NULLIF($6, 0) OFFSET $7;
	`
	var projectID, userID *uuid.UUID
	if filter.ProjectID != uuid.Nil {
		projectID = &filter.ProjectID
	}
	if filter.UserID != uuid.Nil {
		userID = &filter.UserID
	}
	var from, to *time.Time
	if !filter.From.IsZero() {
		from = &filter.From
	}
	if !filter.To.IsZero() {
		to = &filter.To
	}

	rows, err := p.conn.Query(ctx, query, projectID, userID, from, to, filter.UnbilledOnly, filter.Limit, filter.Offset)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var entries []models.TimeEntry
	for rows.Next() {
		var e models.TimeEntry
		err := rows.Scan(&e.TimeEntryID, &e.UserID, &e.ProjectID, &e.StartTime, &e.EndTime, &e.ClockifyID, &e.MonthlyChargeID)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// DeleteTimeEntry deletes a time entry.
func (p *proCatDb) DeleteTimeEntry(ctx context.Context, timeEntryID uuid.UUID) error {
	query := `
		DELETE FROM time_entries
		WHERE time_entry_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, timeEntryID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("time_entry_id", timeEntryID.String()).Msg("failed to delete time entry")
		return dberror.Map(err)
	}
	return nil
}

// LinkTimeEntriesToCharge marks the given entries as billed by the charge.
func (p *proCatDb) LinkTimeEntriesToCharge(ctx context.Context, entryIDs []uuid.UUID, chargeID uuid.UUID) error {
	if len(entryIDs) == 0 {
		return nil
	}
	query := `
		UPDATE time_entries
		SET monthly_charge = $2
		WHERE time_entry_id = ANY($1);
	`
	_, err := p.conn.Exec(ctx, query, entryIDs, chargeID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("charge_id", chargeID.String()).Msg("failed to link time entries to charge")
		return dberror.Map(err)
	}
	return nil
}
