package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// CreateAnalysisCode inserts an analysis code. Re-creating an existing
// code is reported as ErrAlreadyExists.
func (p *proCatDb) CreateAnalysisCode(ctx context.Context, code *models.AnalysisCode) error {
	query := `
		INSERT INTO analysis_codes (code, description, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO NOTHING;
	`
	rowsAffected, err := p.conn.Exec(ctx, query, code.Code, code.Description, code.Notes)
	if err != nil {
		log.Ctx(ctx).Info().Int("code", code.Code).Msg("failed to insert analysis code")
		return dberror.Map(err)
	}
	if rowsAffected == 0 {
		return dberror.ErrAlreadyExists.Msg("analysis code already exists")
	}
	return nil
}

// GetAnalysisCode retrieves an analysis code.
func (p *proCatDb) GetAnalysisCode(ctx context.Context, code int) (*models.AnalysisCode, error) {
	query := `
		SELECT code, description, notes
		FROM analysis_codes
		WHERE code = $1;
	`
	row := p.conn.QueryRow(ctx, query, code)

	var ac models.AnalysisCode
	err := row.Scan(&ac.Code, &ac.Description, &ac.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("analysis code not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &ac, nil
}

// ListAnalysisCodes returns all analysis codes ordered by code.
func (p *proCatDb) ListAnalysisCodes(ctx context.Context) ([]models.AnalysisCode, error) {
	query := `
		SELECT code, description, notes
		FROM analysis_codes
		ORDER BY code;
	`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var codes []models.AnalysisCode
	for rows.Next() {
		var ac models.AnalysisCode
		if err := rows.Scan(&ac.Code, &ac.Description, &ac.Notes); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		codes = append(codes, ac)
	}
	return codes, rows.Err()
}

// DeleteAnalysisCode deletes an analysis code.
func (p *proCatDb) DeleteAnalysisCode(ctx context.Context, code int) error {
	query := `
		DELETE FROM analysis_codes
		WHERE code = $1;
	`
	_, err := p.conn.Exec(ctx, query, code)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int("code", code).Msg("failed to delete analysis code")
		return dberror.Map(err)
	}
	return nil
}
