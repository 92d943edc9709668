package postgresql

import (
	"context"
	"time"

	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ChargeLine is a monthly charge joined with the report fields from its
// funding source, one row of the charges block in the journal CSV.
type ChargeLine struct {
	Charge       models.MonthlyCharge
	ProjectName  string
	CostCentre   string
	Activity     string
	AnalysisCode int
}

// CreateMonthlyCharge inserts a charge and fills in its generated ID.
func (p *proCatDb) CreateMonthlyCharge(ctx context.Context, charge *models.MonthlyCharge) error {
	query := `
		INSERT INTO monthly_charges (project_id, funding_id, amount, charge_date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING charge_id;
	`
	err := p.conn.QueryRow(ctx, query,
		charge.ProjectID, charge.FundingID, charge.Amount, charge.ChargeDate, charge.Description,
	).Scan(&charge.ChargeID)
	if err != nil {
		log.Ctx(ctx).Info().Str("project_id", charge.ProjectID.String()).Msg("failed to insert monthly charge")
		return dberror.Map(err)
	}
	return nil
}

// DeleteNonManualChargesForMonth removes the month's charges for projects
// charged Actual or Pro-rata so they can be regenerated. Manual charges
// are kept.
func (p *proCatDb) DeleteNonManualChargesForMonth(ctx context.Context, month time.Time) error {
	query := `
		DELETE FROM monthly_charges mc
		USING projects pr
		WHERE mc.project_id = pr.project_id
		  AND mc.charge_date = $1
		  AND pr.charging <> 'Manual';
	`
	_, err := p.conn.Exec(ctx, query, month)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Time("month", month).Msg("failed to delete monthly charges")
		return dberror.Map(err)
	}
	return nil
}

// ListChargesForMonth returns the month's charges joined with the funding
// fields needed for the journal CSV.
func (p *proCatDb) ListChargesForMonth(ctx context.Context, month time.Time) ([]ChargeLine, error) {
	query := `
		SELECT mc.charge_id, mc.project_id, mc.funding_id, mc.amount, mc.charge_date, mc.description,
		       pr.name, COALESCE(f.cost_centre, ''), COALESCE(f.activity, ''), COALESCE(f.analysis_code, 0)
		FROM monthly_charges mc
		JOIN projects pr ON pr.project_id = mc.project_id
		JOIN funding f ON f.funding_id = mc.funding_id
		WHERE mc.charge_date = $1
		ORDER BY pr.name, mc.charge_id;
	`
	rows, err := p.conn.Query(ctx, query, month)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var lines []ChargeLine
	for rows.Next() {
		var l ChargeLine
		err := rows.Scan(
			&l.Charge.ChargeID,
			&l.Charge.ProjectID,
			&l.Charge.FundingID,
			&l.Charge.Amount,
			&l.Charge.ChargeDate,
			&l.Charge.Description,
			&l.ProjectName,
			&l.CostCentre,
			&l.Activity,
			&l.AnalysisCode,
		)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// SumChargesForMonth totals the month's charges.
func (p *proCatDb) SumChargesForMonth(ctx context.Context, month time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM monthly_charges
		WHERE charge_date = $1;
	`
	var total decimal.Decimal
	if err := p.conn.QueryRow(ctx, query, month).Scan(&total); err != nil {
		return decimal.Zero, dberror.ErrDatabase.Err(err)
	}
	return total, nil
}

// MonthlyChargeTotals returns the total charged per month over [from, to),
// keyed by the first of the month.
func (p *proCatDb) MonthlyChargeTotals(ctx context.Context, from, to time.Time) (map[time.Time]decimal.Decimal, error) {
	query := `
		SELECT charge_date, SUM(amount)
		FROM monthly_charges
		WHERE charge_date >= $1 AND charge_date < $2
		GROUP BY charge_date
		ORDER BY charge_date;
	`
	rows, err := p.conn.Query(ctx, query, from, to)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	totals := make(map[time.Time]decimal.Decimal)
	for rows.Next() {
		var month time.Time
		var total decimal.Decimal
		if err := rows.Scan(&month, &total); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		totals[month] = total
	}
	return totals, rows.Err()
}
