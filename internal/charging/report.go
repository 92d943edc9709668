package charging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/analytics"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
)

// GenerateMonthlyCharges recreates the month's charges for every project
// charged Actual or Pro-rata. Existing non-Manual charges for the month
// are deleted first so the generation can be re-run; Manual charges are
// left alone. The month must not be in the future.
func GenerateMonthlyCharges(ctx context.Context, month, now time.Time) error {
	start := analytics.MonthStart(month)
	if start.After(now) {
		return ErrFutureMonth
	}
	end := start.AddDate(0, 1, 0)

	if err := db.DB(ctx).DeleteNonManualChargesForMonth(ctx, start); err != nil {
		return ErrCharging.Err(err)
	}

	overlapping, err := db.DB(ctx).ListProjectsOverlapping(ctx, start, end, true)
	if err != nil {
		return ErrCharging.Err(err)
	}

	for i := range overlapping {
		project := &overlapping[i]
		switch project.Charging {
		case types.ChargingProRata:
			err = createProRataCharges(ctx, project, start, end)
		case types.ChargingActual:
			err = createActualCharges(ctx, project, start, end)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func chargeDescription(projectName string, month time.Time) string {
	return fmt.Sprintf("%s: %s", projectName, month.Format("January 2006"))
}

// createProRataCharges books the constant monthly charge of each valid
// funding source. The charge derives from project duration and budget
// alone, so no check against the funding left is made.
func createProRataCharges(ctx context.Context, project *models.Project, start, end time.Time) error {
	balances, err := projects.LoadBalances(ctx, project.ProjectID)
	if err != nil {
		return ErrCharging.Err(err)
	}
	for _, balance := range ValidFundingSources(balances, end) {
		amount := projects.ProRataMonthlyCharge(&balance.Funding, project)
		if amount.IsZero() {
			continue
		}
		charge := &models.MonthlyCharge{
			ProjectID:   project.ProjectID,
			FundingID:   balance.Funding.FundingID,
			Amount:      amount,
			ChargeDate:  start,
			Description: chargeDescription(project.Name, start),
		}
		if err := db.DB(ctx).CreateMonthlyCharge(ctx, charge); err != nil {
			return ErrCharging.Err(err)
		}
	}
	return nil
}

// createActualCharges converts the month's unbilled time entries into
// charges, consuming funding sources in expiry order. Fails when the
// logged days exceed the effort left across the project's funding.
func createActualCharges(ctx context.Context, project *models.Project, start, end time.Time) error {
	entries, err := db.DB(ctx).ListTimeEntries(ctx, postgresql.TimeEntryFilter{
		ProjectID:    project.ProjectID,
		From:         start,
		To:           end,
		UnbilledOnly: true,
	})
	if err != nil {
		return ErrCharging.Err(err)
	}
	if len(entries) == 0 {
		return nil
	}

	balances, err := projects.LoadBalances(ctx, project.ProjectID)
	if err != nil {
		return ErrCharging.Err(err)
	}

	days := ChargeableDays(entries)
	if days.GreaterThan(TotalEffortLeft(balances)) {
		return ErrEffortExceeded.Msg(fmt.Sprintf("total chargeable days exceed the effort left for project %s", project.Name))
	}

	allocations, err := AllocateActual(days, ValidFundingSources(balances, end))
	if err != nil {
		return ErrEffortExceeded.Msg(fmt.Sprintf("total chargeable days exceed the effort left for project %s", project.Name))
	}

	var firstCharge uuid.UUID
	for _, allocation := range allocations {
		charge := &models.MonthlyCharge{
			ProjectID:   project.ProjectID,
			FundingID:   allocation.Funding.FundingID,
			Amount:      allocation.Amount,
			ChargeDate:  start,
			Description: chargeDescription(project.Name, start),
		}
		if err := db.DB(ctx).CreateMonthlyCharge(ctx, charge); err != nil {
			return ErrCharging.Err(err)
		}
		if firstCharge == uuid.Nil {
			firstCharge = charge.ChargeID
		}
	}

	// Entries are billed once as a set; the link records billed state,
	// not how the amount was split across funding.
	if firstCharge != uuid.Nil {
		entryIDs := make([]uuid.UUID, len(entries))
		for i := range entries {
			entryIDs[i] = entries[i].TimeEntryID
		}
		if err := db.DB(ctx).LinkTimeEntriesToCharge(ctx, entryIDs, firstCharge); err != nil {
			return ErrCharging.Err(err)
		}
	}

	log.Ctx(ctx).Info().
		Str("project", project.Name).
		Str("days", days.String()).
		Int("charges", len(allocations)).
		Msg("generated actual charges")
	return nil
}

// GenerateReport regenerates the month's charges and renders the journal
// CSV from whatever charges now exist for the month, Manual included.
func GenerateReport(ctx context.Context, month, now time.Time) ([]byte, error) {
	if err := GenerateMonthlyCharges(ctx, month, now); err != nil {
		return nil, err
	}
	return BuildCSV(ctx, analytics.MonthStart(month))
}
