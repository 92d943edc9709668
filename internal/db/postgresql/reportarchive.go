package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// SaveReport stores a generated charges report. Regenerating a month adds
// a new row; GetReportForMonth returns the most recent.
func (p *proCatDb) SaveReport(ctx context.Context, report *models.ReportArchive) error {
	query := `
		INSERT INTO report_archive (report_month, content)
		VALUES ($1, $2)
		RETURNING report_id, generated_at;
	`
	err := p.conn.QueryRow(ctx, query, report.ReportMonth, report.Content).
		Scan(&report.ReportID, &report.GeneratedAt)
	if err != nil {
		log.Ctx(ctx).Info().Time("month", report.ReportMonth).Msg("failed to save report")
		return dberror.Map(err)
	}
	return nil
}

// DeleteReportsForMonth drops every archived report for the month.
func (p *proCatDb) DeleteReportsForMonth(ctx context.Context, month time.Time) error {
	query := `
		DELETE FROM report_archive
		WHERE report_month = $1;
	`
	_, err := p.conn.Exec(ctx, query, month)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Time("month", month).Msg("failed to delete archived reports")
		return dberror.Map(err)
	}
	return nil
}

// GetReportForMonth returns the most recently generated report for the
// month.
func (p *proCatDb) GetReportForMonth(ctx context.Context, month time.Time) (*models.ReportArchive, error) {
	query := `
		SELECT report_id, report_month, content, generated_at
		FROM report_archive
		WHERE report_month = $1
		ORDER BY generated_at DESC
		LIMIT 1;
	`
	var report models.ReportArchive
	err := p.conn.QueryRow(ctx, query, month).
		Scan(&report.ReportID, &report.ReportMonth, &report.Content, &report.GeneratedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("report not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &report, nil
}
