package analytics

import (
	"testing"
	"time"

	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeseriesAddWindow(t *testing.T) {
	// two business weeks
	ts := NewTimeseries(date(2025, 4, 7), date(2025, 4, 21))
	require.Len(t, ts.Dates, 10)

	ts.AddWindow(date(2025, 4, 9), date(2025, 4, 15), 0.5)

	// Wed 9th to Mon 14th inclusive: 4 business days
	assert.Equal(t, []float64{0, 0, 0.5, 0.5, 0.5, 0.5, 0, 0, 0, 0}, ts.Values)
}

func TestTimeseriesArithmetic(t *testing.T) {
	a := &Timeseries{Values: []float64{2, 4, 6}}
	b := &Timeseries{Values: []float64{1, 0, 3}}

	assert.Equal(t, []float64{3, 4, 9}, a.Add(b).Values)
	assert.Equal(t, []float64{4, 8, 12}, a.Scale(2).Values)
	// division by zero yields zero, not infinity
	assert.Equal(t, []float64{2, 0, 2}, a.Div(b).Values)
}

func capacityWindow(value string, start, end time.Time) models.CapacityWindow {
	return models.CapacityWindow{
		Capacity: models.Capacity{
			Value:     decimal.RequireFromString(value),
			StartDate: start,
		},
		EndDate: end,
	}
}

func TestCapacitySeries(t *testing.T) {
	start, end := date(2025, 4, 7), date(2025, 4, 14)
	windows := []models.CapacityWindow{
		capacityWindow("0.5", start, end),
		capacityWindow("0.2", date(2025, 4, 9), end),
	}

	ts := CapacitySeries(start, end, windows)
	require.Len(t, ts.Values, 5)
	assert.InDelta(t, 0.5, ts.Values[0], 1e-9)
	assert.InDelta(t, 0.7, ts.Values[2], 1e-9)

	members := TeamMembersSeries(start, end, windows)
	assert.Equal(t, []float64{1, 1, 2, 2, 2}, members.Values)
}

func TestEffortSeries(t *testing.T) {
	start, end := date(2025, 4, 7), date(2025, 4, 14)
	spans := []ProjectSpan{
		{Start: start, End: end, TotalEffort: 10}, // 5 business days, 2 per day
		{Start: start, End: end, TotalEffort: 0},
	}

	ts := EffortSeries(start, end, spans)
	require.Len(t, ts.Values, 5)
	for _, v := range ts.Values {
		assert.InDelta(t, 2, v, 1e-9)
	}
}

func TestCostRecoverySeries(t *testing.T) {
	spans := []MonthSpan{
		{Start: date(2025, 3, 1), End: date(2025, 4, 1)},
		{Start: date(2025, 4, 1), End: date(2025, 5, 1)},
	}
	totals := map[time.Time]decimal.Decimal{
		date(2025, 4, 1): decimal.RequireFromString("3890"),
	}

	ts, monthly := CostRecoverySeries(spans, totals, decimal.RequireFromString("389"))

	require.Equal(t, []float64{0, 3890}, monthly)
	// March contributes nothing
	assert.Zero(t, ts.Values[0])
	// 10 charged days spread over April's 22 business days
	last := ts.Values[len(ts.Values)-1]
	assert.InDelta(t, 10.0/22, last, 1e-9)
}

func TestProjectSpanEffortPerDay(t *testing.T) {
	span := ProjectSpan{Start: date(2025, 4, 7), End: date(2025, 4, 14), TotalEffort: 10}
	assert.InDelta(t, 2, span.EffortPerDay(), 1e-9)

	empty := ProjectSpan{Start: date(2025, 4, 12), End: date(2025, 4, 14), TotalEffort: 10}
	assert.Zero(t, empty.EffortPerDay())
}
