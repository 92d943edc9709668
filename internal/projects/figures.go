package projects

import (
	"math"
	"time"

	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
)

// Deadline is the time left until a project's end date.
type Deadline struct {
	WeeksLeft   int     `json:"weeks_left"`
	PercentLeft float64 `json:"percent_left"`
}

// EffortLeft is the days of effort remaining across funding sources.
type EffortLeft struct {
	DaysLeft    int64   `json:"days_left"`
	PercentLeft float64 `json:"percent_left"`
}

// FundingBalance pairs a funding source with the total already charged to
// it, from which the remaining budget and effort derive.
type FundingBalance struct {
	Funding models.Funding
	Charged decimal.Decimal
}

// FundingLeft is the unspent budget.
func (b *FundingBalance) FundingLeft() decimal.Decimal {
	return b.Funding.Budget.Sub(b.Charged)
}

// EffortLeft is the days of effort the unspent budget pays for.
func (b *FundingBalance) EffortLeft() decimal.Decimal {
	if b.Funding.DailyRate.IsZero() {
		return decimal.Zero
	}
	return b.FundingLeft().Div(b.Funding.DailyRate).Round(1)
}

// WeeksToDeadline reports the weeks left until the project deadline and
// the percentage of the project duration they represent. Only meaningful
// for Active projects with both dates; otherwise nil.
func WeeksToDeadline(project *models.Project, now time.Time) *Deadline {
	if project.Status != types.ProjectActive || project.StartDate == nil || project.EndDate == nil {
		return nil
	}
	left := project.EndDate.Sub(now).Hours() / 24 / 7
	total := project.EndDate.Sub(*project.StartDate).Hours() / 24 / 7
	if total <= 0 {
		return nil
	}
	return &Deadline{
		WeeksLeft:   int(left),
		PercentLeft: math.Round(left/total*1000) / 10,
	}
}

// TotalEffort is the days of effort available across all funding sources,
// or nil when there is no funding information.
func TotalEffort(funding []models.Funding) *int64 {
	if len(funding) == 0 {
		return nil
	}
	var total int64
	for i := range funding {
		total += funding[i].Effort()
	}
	return &total
}

// DaysLeft is the days of effort remaining across funding sources and the
// percentage of the total they represent, or nil when there is no funding
// or no effort.
func DaysLeft(balances []FundingBalance) *EffortLeft {
	if len(balances) == 0 {
		return nil
	}
	var total int64
	left := decimal.Zero
	for i := range balances {
		total += balances[i].Funding.Effort()
		left = left.Add(balances[i].EffortLeft())
	}
	if total == 0 {
		return nil
	}
	pct, _ := left.Div(decimal.NewFromInt(total)).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return &EffortLeft{
		DaysLeft:    left.Round(0).IntPart(),
		PercentLeft: pct,
	}
}

// MonthsBetween counts calendar months from start to end, at least 1 for
// any positive span.
func MonthsBetween(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() > start.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

// ProRataMonthlyCharge is the constant monthly charge for a funding
// source on a Pro-rata project: budget spread evenly over the project's
// calendar months. Zero when the project is undated.
func ProRataMonthlyCharge(funding *models.Funding, project *models.Project) decimal.Decimal {
	if project.StartDate == nil || project.EndDate == nil {
		return decimal.Zero
	}
	months := MonthsBetween(*project.StartDate, *project.EndDate)
	if months == 0 {
		return decimal.Zero
	}
	return funding.Budget.Div(decimal.NewFromInt(int64(months))).Round(2)
}
