package projects

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StatusReport is the derived view of a project's health.
type StatusReport struct {
	Project     *models.Project `json:"project"`
	TotalEffort *int64          `json:"total_effort,omitempty"`
	DaysLeft    *EffortLeft     `json:"days_left,omitempty"`
	Deadline    *Deadline       `json:"deadline,omitempty"`
}

// LoadBalances pairs each funding source of a project with the amount
// already charged to it.
func LoadBalances(ctx context.Context, projectID uuid.UUID) ([]FundingBalance, error) {
	funding, err := db.DB(ctx).ListFundingForProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	balances := make([]FundingBalance, 0, len(funding))
	for i := range funding {
		charged, err := db.DB(ctx).SumChargesForFunding(ctx, funding[i].FundingID)
		if err != nil {
			return nil, err
		}
		balances = append(balances, FundingBalance{Funding: funding[i], Charged: charged})
	}
	return balances, nil
}

// GetStatusReport assembles the derived figures for a project.
func GetStatusReport(ctx context.Context, projectID uuid.UUID, now time.Time) (*StatusReport, error) {
	project, err := db.DB(ctx).GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	balances, err := LoadBalances(ctx, projectID)
	if err != nil {
		return nil, err
	}
	funding := make([]models.Funding, len(balances))
	for i := range balances {
		funding[i] = balances[i].Funding
	}
	return &StatusReport{
		Project:     project,
		TotalEffort: TotalEffort(funding),
		DaysLeft:    DaysLeft(balances),
		Deadline:    WeeksToDeadline(project, now),
	}, nil
}

// BudgetStatus partitions funding sources into the two states worth an
// alert: funds run out before the account expired, and accounts expired
// with budget still left.
type BudgetStatus struct {
	RanOutNotExpired  []FundingBalance
	ExpiredBudgetLeft []FundingBalance
}

// GetBudgetStatus inspects every funding source as of the given date.
func GetBudgetStatus(ctx context.Context, date time.Time) (*BudgetStatus, error) {
	funding, err := db.DB(ctx).ListFunding(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	status := &BudgetStatus{}
	for i := range funding {
		if funding[i].ExpiryDate == nil {
			continue
		}
		charged, err := db.DB(ctx).SumChargesForFunding(ctx, funding[i].FundingID)
		if err != nil {
			return nil, err
		}
		balance := FundingBalance{Funding: funding[i], Charged: charged}
		left := balance.FundingLeft()
		switch {
		case funding[i].ExpiryDate.After(date) && left.LessThanOrEqual(decimal.Zero):
			status.RanOutNotExpired = append(status.RanOutNotExpired, balance)
		case funding[i].ExpiryDate.Before(date) && left.GreaterThan(decimal.Zero):
			status.ExpiredBudgetLeft = append(status.ExpiredBudgetLeft, balance)
		}
	}
	return status, nil
}

// OverBudgetProject is an active project whose last-month charges exceed
// the budget left across its unexpired funding.
type OverBudgetProject struct {
	Project      models.Project
	TotalCharges decimal.Decimal
	ActiveBudget decimal.Decimal
}

// FindOverBudgetProjects compares, for each active project, what last
// month's logged time would cost at the average daily rate against the
// budget remaining on unexpired funding.
func FindOverBudgetProjects(ctx context.Context, lastMonthStart, currentMonthStart time.Time) ([]OverBudgetProject, error) {
	active, err := db.DB(ctx).ListProjectsByStatus(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	var over []OverBudgetProject
	for _, project := range active {
		balances, err := LoadBalances(ctx, project.ProjectID)
		if err != nil {
			return nil, err
		}
		if len(balances) == 0 {
			continue
		}

		entries, err := db.DB(ctx).ListTimeEntries(ctx, timeEntriesLastMonth(project.ProjectID, lastMonthStart, currentMonthStart))
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			continue
		}

		charges, budget, ok := ChargesAgainstBudget(entries, balances, currentMonthStart)
		if !ok {
			continue
		}
		if charges.GreaterThan(budget) {
			log.Ctx(ctx).Info().
				Str("project", project.Name).
				Str("charges", charges.String()).
				Str("budget", budget.String()).
				Msg("project charges exceed active budget")
			over = append(over, OverBudgetProject{Project: project, TotalCharges: charges, ActiveBudget: budget})
		}
	}
	return over, nil
}
