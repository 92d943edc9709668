package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const fundingColumns = `funding_id, project_id, source, funding_body, project_code, cost_centre, activity, analysis_code, expiry_date, budget, daily_rate`

func collectFunding(rows pgx.Rows) ([]models.Funding, error) {
	defer rows.Close()
	var funding []models.Funding
	for rows.Next() {
		var f models.Funding
		err := rows.Scan(
			&f.FundingID,
			&f.ProjectID,
			&f.Source,
			&f.FundingBody,
			&f.ProjectCode,
			&f.CostCentre,
			&f.Activity,
			&f.AnalysisCode,
			&f.ExpiryDate,
			&f.Budget,
			&f.DailyRate,
		)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		funding = append(funding, f)
	}
	return funding, rows.Err()
}

// CreateFunding inserts a funding source and fills in its generated ID.
func (p *proCatDb) CreateFunding(ctx context.Context, funding *models.Funding) error {
	query := `
		INSERT INTO funding (project_id, source, funding_body, project_code, cost_centre, activity, analysis_code, expiry_date, budget, daily_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING funding_id;
	`
	err := p.conn.QueryRow(ctx, query,
		funding.ProjectID,
		string(funding.Source),
		funding.FundingBody,
		funding.ProjectCode,
		funding.CostCentre,
		funding.Activity,
		funding.AnalysisCode,
		funding.ExpiryDate,
		funding.Budget,
		funding.DailyRate,
	).Scan(&funding.FundingID)
	if err != nil {
		log.Ctx(ctx).Info().Str("project_id", funding.ProjectID.String()).Msg("failed to insert funding")
		return dberror.Map(err)
	}
	return nil
}

// GetFunding retrieves a funding source by ID.
func (p *proCatDb) GetFunding(ctx context.Context, fundingID uuid.UUID) (*models.Funding, error) {
	query := `
		SELECT ` + fundingColumns + `
		FROM funding
		WHERE funding_id = $1;
	`
	row := p.conn.QueryRow(ctx, query, fundingID)

	var f models.Funding
	err := row.Scan(
		&f.FundingID,
		&f.ProjectID,
		&f.Source,
		&f.FundingBody,
		&f.ProjectCode,
		&f.CostCentre,
		&f.Activity,
		&f.AnalysisCode,
		&f.ExpiryDate,
		&f.Budget,
		&f.DailyRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("funding not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &f, nil
}

// UpdateFunding updates all mutable fields of a funding source.
func (p *proCatDb) UpdateFunding(ctx context.Context, funding *models.Funding) error {
	query := `
		UPDATE funding
		SET source = $2, funding_body = $3, project_code = $4, cost_centre = $5,
		    activity = $6, analysis_code = $7, expiry_date = $8, budget = $9, daily_rate = $10
		WHERE funding_id = $1;
	`
	rowsAffected, err := p.conn.Exec(ctx, query,
		funding.FundingID,
		string(funding.Source),
		funding.FundingBody,
		funding.ProjectCode,
		funding.CostCentre,
		funding.Activity,
		funding.AnalysisCode,
		funding.ExpiryDate,
		funding.Budget,
		funding.DailyRate,
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("funding_id", funding.FundingID.String()).Msg("failed to update funding")
		return dberror.Map(err)
	}
	if rowsAffected == 0 {
		return dberror.ErrNotFound.Msg("funding not found")
	}
	return nil
}

// DeleteFunding deletes a funding source.
func (p *proCatDb) DeleteFunding(ctx context.Context, fundingID uuid.UUID) error {
	query := `
		DELETE FROM funding
		WHERE funding_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, fundingID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("funding_id", fundingID.String()).Msg("failed to delete funding")
		return dberror.Map(err)
	}
	return nil
}

// ListFunding returns funding sources with limit/offset pagination.
func (p *proCatDb) ListFunding(ctx context.Context, limit, offset int) ([]models.Funding, error) {
	query := `
		SELECT ` + fundingColumns + `
		FROM funding
		ORDER BY expiry_date NULLS LAST, funding_id
		LIMIT NULLIF($1, 0) OFFSET $2;
	`
	rows, err := p.conn.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return collectFunding(rows)
}

// ListFundingForProject returns a project's funding ordered by expiry
// date, soonest first. Charging consumes sources in this order.
func (p *proCatDb) ListFundingForProject(ctx context.Context, projectID uuid.UUID) ([]models.Funding, error) {
	query := `
		SELECT ` + fundingColumns + `
		FROM funding
		WHERE project_id = $1
		ORDER BY expiry_date NULLS LAST, funding_id;
	`
	rows, err := p.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return collectFunding(rows)
}

// SumChargesForFunding totals all monthly charges booked against the
// funding source.
func (p *proCatDb) SumChargesForFunding(ctx context.Context, fundingID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM monthly_charges
		WHERE funding_id = $1;
	`
	var total decimal.Decimal
	if err := p.conn.QueryRow(ctx, query, fundingID).Scan(&total); err != nil {
		return decimal.Zero, dberror.ErrDatabase.Err(err)
	}
	return total, nil
}
