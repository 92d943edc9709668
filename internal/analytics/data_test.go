package analytics

import (
	"testing"

	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funding(source types.FundingSource, budget, dailyRate string) models.Funding {
	return models.Funding{
		Source:    source,
		Budget:    decimal.RequireFromString(budget),
		DailyRate: decimal.RequireFromString(dailyRate),
	}
}

func TestEffortDays(t *testing.T) {
	mixed := []models.Funding{
		funding(types.FundingExternal, "3890", "389"), // 10 days
		funding(types.FundingInternal, "1945", "389"), // 5 days
		funding(types.FundingInternal, "778", "389"),  // 2 days
	}

	assert.Equal(t, int64(17), TotalEffortDays(mixed))
	assert.Equal(t, int64(7), InternalEffortDays(mixed))

	external := []models.Funding{funding(types.FundingExternal, "3890", "389")}
	assert.Zero(t, InternalEffortDays(external))
}

func TestCostRecoveryTraces(t *testing.T) {
	capacity := &Timeseries{Values: []float64{2, 2, 2}}
	charged := &Timeseries{Values: []float64{1, 0.5, 1}}
	internal := &Timeseries{Values: []float64{0.5, 0.5, 0}}
	members := &Timeseries{Values: []float64{4, 4, 4}}

	traces := costRecoveryTraces(capacity, charged, internal, members)
	require.Len(t, traces, 3)

	assert.Equal(t, "Average capacity for project work %", traces[0].Label)
	assert.Equal(t, "Fraction of capacity used for all projects %", traces[1].Label)
	assert.Equal(t, "Fraction of capacity used for charged projects %", traces[2].Label)

	assert.Equal(t, []float64{50, 50, 50}, traces[0].Values)
	// all projects = (charged + internal) / members
	assert.Equal(t, []float64{37.5, 25, 25}, traces[1].Values)
	assert.Equal(t, []float64{25, 12.5, 25}, traces[2].Values)
}

func TestStatusTraceLabels(t *testing.T) {
	require.Len(t, statusTraces, 3)
	assert.Equal(t, "Tentative project effort", statusTraces[0].label)
	assert.Equal(t, "Confirmed project effort", statusTraces[1].label)
	assert.Equal(t, "Active project effort", statusTraces[2].label)
}
