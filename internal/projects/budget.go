package projects

import (
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
)

var activeOnly = []types.ProjectStatus{types.ProjectActive}

func timeEntriesLastMonth(projectID uuid.UUID, lastMonthStart, currentMonthStart time.Time) postgresql.TimeEntryFilter {
	return postgresql.TimeEntryFilter{
		ProjectID: projectID,
		From:      lastMonthStart,
		To:        currentMonthStart,
	}
}

// ChargesAgainstBudget costs the given time entries at the average daily
// rate of the project's active funding (unexpired as of asOf, budget
// left) and returns that cost next to the total budget left. ok is false
// when there is no active funding to rate against.
func ChargesAgainstBudget(entries []models.TimeEntry, balances []FundingBalance, asOf time.Time) (charges, budget decimal.Decimal, ok bool) {
	var hours float64
	for i := range entries {
		hours += entries[i].Hours()
	}

	rateSum := decimal.Zero
	rateCount := 0
	budget = decimal.Zero
	for i := range balances {
		expiry := balances[i].Funding.ExpiryDate
		if expiry == nil || expiry.Before(asOf) || !balances[i].Funding.Budget.GreaterThan(decimal.Zero) {
			continue
		}
		rateSum = rateSum.Add(balances[i].Funding.DailyRate)
		rateCount++
		budget = budget.Add(balances[i].FundingLeft())
	}
	if rateCount == 0 {
		return decimal.Zero, decimal.Zero, false
	}

	avgRate := rateSum.Div(decimal.NewFromInt(int64(rateCount)))
	days := decimal.NewFromFloat(hours / types.HoursPerDay)
	return days.Mul(avgRate), budget, true
}
