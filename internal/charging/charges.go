package charging

import (
	"sort"
	"time"

	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
)

// ChargeableDays converts logged time entries into chargeable days at
// seven hours per day, rounded to one decimal place.
func ChargeableDays(entries []models.TimeEntry) decimal.Decimal {
	var hours float64
	for i := range entries {
		hours += entries[i].Hours()
	}
	return decimal.NewFromFloat(hours / types.HoursPerDay).Round(1)
}

// Allocation is one charge to be booked against a funding source.
type Allocation struct {
	Funding models.Funding
	Days    decimal.Decimal
	Amount  decimal.Decimal
}

// ValidFundingSources filters balances down to funding usable for a
// charging period ending at end: not expired before the period end and
// with budget left. The result is ordered by expiry so the soonest to
// expire gets charged first.
func ValidFundingSources(balances []projects.FundingBalance, end time.Time) []projects.FundingBalance {
	var valid []projects.FundingBalance
	for i := range balances {
		expiry := balances[i].Funding.ExpiryDate
		if expiry == nil || expiry.Before(end) {
			continue
		}
		if !balances[i].FundingLeft().GreaterThan(decimal.Zero) {
			continue
		}
		valid = append(valid, balances[i])
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Funding.ExpiryDate.Before(*valid[j].Funding.ExpiryDate)
	})
	return valid
}

// TotalEffortLeft sums the days of effort remaining across all balances,
// expired funding included.
func TotalEffortLeft(balances []projects.FundingBalance) decimal.Decimal {
	total := decimal.Zero
	for i := range balances {
		total = total.Add(balances[i].EffortLeft())
	}
	return total
}

// AllocateActual splits days of chargeable effort across the funding
// balances, in order, deducting from each until its effort left runs out.
// Returns ErrEffortExceeded when days remain after the last balance.
func AllocateActual(days decimal.Decimal, balances []projects.FundingBalance) ([]Allocation, error) {
	var allocations []Allocation
	for i := range balances {
		if !days.GreaterThan(decimal.Zero) {
			break
		}
		deduct := decimal.Min(days, balances[i].EffortLeft())
		if !deduct.GreaterThan(decimal.Zero) {
			continue
		}
		allocations = append(allocations, Allocation{
			Funding: balances[i].Funding,
			Days:    deduct,
			Amount:  deduct.Mul(balances[i].Funding.DailyRate).Round(1),
		})
		days = days.Sub(deduct)
	}
	if days.GreaterThan(decimal.Zero) {
		return nil, ErrEffortExceeded
	}
	return allocations, nil
}
