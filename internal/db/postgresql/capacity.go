package postgresql

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// CreateCapacity inserts a capacity entry and fills in its generated ID.
func (p *proCatDb) CreateCapacity(ctx context.Context, capacity *models.Capacity) error {
	query := `
		INSERT INTO capacities (user_id, value, start_date)
		VALUES ($1, $2, $3)
		RETURNING capacity_id;
	`
	err := p.conn.QueryRow(ctx, query, capacity.UserID, capacity.Value, capacity.StartDate).
		Scan(&capacity.CapacityID)
	if err != nil {
		log.Ctx(ctx).Info().Str("user_id", capacity.UserID.String()).Msg("failed to insert capacity")
		return dberror.Map(err)
	}
	return nil
}

// ListCapacities returns all capacity entries ordered by user and start
// date.
func (p *proCatDb) ListCapacities(ctx context.Context) ([]models.Capacity, error) {
	query := `
		SELECT capacity_id, user_id, value, start_date
		FROM capacities
		ORDER BY user_id, start_date;
	`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var capacities []models.Capacity
	for rows.Next() {
		var c models.Capacity
		if err := rows.Scan(&c.CapacityID, &c.UserID, &c.Value, &c.StartDate); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		capacities = append(capacities, c)
	}
	return capacities, rows.Err()
}

// DeleteCapacity deletes a capacity entry.
func (p *proCatDb) DeleteCapacity(ctx context.Context, capacityID uuid.UUID) error {
	query := `
		DELETE FROM capacities
		WHERE capacity_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, capacityID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("capacity_id", capacityID.String()).Msg("failed to delete capacity")
		return dberror.Map(err)
	}
	return nil
}

// ListCapacityWindows resolves each capacity entry's end date: the start
// date of the user's next entry, or periodEnd when there is none. Entries
// starting after periodEnd are excluded.
func (p *proCatDb) ListCapacityWindows(ctx context.Context, periodEnd time.Time) ([]models.CapacityWindow, error) {
	query := `
		SELECT capacity_id, user_id, value, start_date,
		       COALESCE(
		           LEAD(start_date) OVER (PARTITION BY user_id ORDER BY start_date),
		           $1
		       ) AS end_date
		FROM capacities
		WHERE start_date <= $1
		ORDER BY user_id, start_date;
	`
	rows, err := p.conn.Query(ctx, query, periodEnd)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var windows []models.CapacityWindow
	for rows.Next() {
		var w models.CapacityWindow
		if err := rows.Scan(&w.CapacityID, &w.UserID, &w.Value, &w.StartDate, &w.EndDate); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
