package analytics

import (
	"time"

	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/shopspring/decimal"
)

// Timeseries is a value per business day over a plotting period. The
// index is shared by every series built for the same period, so series
// can be combined pointwise.
type Timeseries struct {
	Dates  []time.Time
	Values []float64
}

// NewTimeseries builds a zeroed series over the business days in
// [start, end).
func NewTimeseries(start, end time.Time) *Timeseries {
	dates := BusinessDays(start, end)
	return &Timeseries{
		Dates:  dates,
		Values: make([]float64, len(dates)),
	}
}

// AddWindow adds value to every business day of the series that falls in
// [start, end).
func (ts *Timeseries) AddWindow(start, end time.Time, value float64) {
	s, e := dateOnly(start), dateOnly(end)
	for i, d := range ts.Dates {
		if !d.Before(s) && d.Before(e) {
			ts.Values[i] += value
		}
	}
}

// Div divides the series pointwise by other. Points where other is zero
// become zero rather than infinity so charts stay plottable.
func (ts *Timeseries) Div(other *Timeseries) *Timeseries {
	out := &Timeseries{Dates: ts.Dates, Values: make([]float64, len(ts.Values))}
	for i := range ts.Values {
		if i < len(other.Values) && other.Values[i] != 0 {
			out.Values[i] = ts.Values[i] / other.Values[i]
		}
	}
	return out
}

// Add sums two series pointwise.
func (ts *Timeseries) Add(other *Timeseries) *Timeseries {
	out := &Timeseries{Dates: ts.Dates, Values: make([]float64, len(ts.Values))}
	for i := range ts.Values {
		out.Values[i] = ts.Values[i]
		if i < len(other.Values) {
			out.Values[i] += other.Values[i]
		}
	}
	return out
}

// Scale multiplies every point by factor.
func (ts *Timeseries) Scale(factor float64) *Timeseries {
	out := &Timeseries{Dates: ts.Dates, Values: make([]float64, len(ts.Values))}
	for i := range ts.Values {
		out.Values[i] = ts.Values[i] * factor
	}
	return out
}

// ProjectSpan is the slice of a project relevant to effort aggregation.
type ProjectSpan struct {
	Start       time.Time
	End         time.Time
	TotalEffort int64
}

// EffortPerDay spreads the project's funded effort evenly over its
// business days.
func (p *ProjectSpan) EffortPerDay() float64 {
	days := CountBusinessDays(p.Start, p.End)
	if days == 0 {
		return 0
	}
	return float64(p.TotalEffort) / float64(days)
}

// CapacitySeries aggregates user capacity fractions over the period. Each
// window contributes its value on the business days it covers.
func CapacitySeries(start, end time.Time, windows []models.CapacityWindow) *Timeseries {
	ts := NewTimeseries(start, end)
	for i := range windows {
		value, _ := windows[i].Value.Float64()
		ts.AddWindow(windows[i].StartDate, windows[i].EndDate, value)
	}
	return ts
}

// TeamMembersSeries counts team members with any capacity entry in effect
// per business day.
func TeamMembersSeries(start, end time.Time, windows []models.CapacityWindow) *Timeseries {
	ts := NewTimeseries(start, end)
	for i := range windows {
		ts.AddWindow(windows[i].StartDate, windows[i].EndDate, 1)
	}
	return ts
}

// EffortSeries aggregates effort-per-day over the period for the given
// project spans. Projects without funding contribute nothing since their
// total effort is zero.
func EffortSeries(start, end time.Time, spans []ProjectSpan) *Timeseries {
	ts := NewTimeseries(start, end)
	for i := range spans {
		ts.AddWindow(spans[i].Start, spans[i].End, spans[i].EffortPerDay())
	}
	return ts
}

// CostRecoverySeries converts monthly charge totals into charged days of
// effort per business day, spread evenly over each month. It also returns
// the plain monthly totals for the bar chart, in span order.
func CostRecoverySeries(spans []MonthSpan, totals map[time.Time]decimal.Decimal, dailyRate decimal.Decimal) (*Timeseries, []float64) {
	if len(spans) == 0 {
		return &Timeseries{}, nil
	}
	ts := NewTimeseries(spans[0].Start, spans[len(spans)-1].End)
	monthly := make([]float64, len(spans))
	for i, span := range spans {
		total, ok := totals[span.Start]
		if !ok {
			continue
		}
		monthly[i], _ = total.Float64()
		if dailyRate.IsZero() {
			continue
		}
		days, _ := total.Div(dailyRate).Float64()
		businessDays := CountBusinessDays(span.Start, span.End)
		if businessDays == 0 {
			continue
		}
		ts.AddWindow(span.Start, span.End, days/float64(businessDays))
	}
	return ts, monthly
}
