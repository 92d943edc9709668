package analytics

import (
	"context"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
)

// Trace is one labelled line of a timeseries chart.
type Trace struct {
	Label  string    `json:"label"`
	Colour string    `json:"colour"`
	Values []float64 `json:"values"`
}

// TimeseriesData is what the analytics endpoints return: a shared date
// index plus one or more traces over it.
type TimeseriesData struct {
	Dates  []time.Time `json:"dates"`
	Traces []Trace     `json:"traces"`
}

// CostRecoveryData extends the timeseries with the monthly charge totals
// for the bar chart.
type CostRecoveryData struct {
	TimeseriesData
	Months        []string  `json:"months"`
	MonthlyTotals []float64 `json:"monthly_totals"`
}

// statusTraces define the cumulative effort traces of the capacity
// planning plot: a tentative project's effort is also counted in the
// traces beneath it.
var statusTraces = []struct {
	label    string
	colour   string
	statuses []types.ProjectStatus
}{
	{"Tentative project effort", "firebrick", []types.ProjectStatus{types.ProjectDraft, types.ProjectNotStarted, types.ProjectActive}},
	{"Confirmed project effort", "orange", []types.ProjectStatus{types.ProjectNotStarted, types.ProjectActive}},
	{"Active project effort", "navy", []types.ProjectStatus{types.ProjectActive}},
}

// GetCapacityTimeseries aggregates all user capacities over the period.
func GetCapacityTimeseries(ctx context.Context, start, end time.Time) (*Timeseries, error) {
	windows, err := db.DB(ctx).ListCapacityWindows(ctx, end)
	if err != nil {
		return nil, err
	}
	return CapacitySeries(start, end, windows), nil
}

// GetEffortTimeseries aggregates effort per day over the period for
// projects in the given statuses. Projects without funding are skipped.
func GetEffortTimeseries(ctx context.Context, start, end time.Time, statuses []types.ProjectStatus) (*Timeseries, error) {
	projects, err := db.DB(ctx).ListProjectsOverlapping(ctx, start, end, false)
	if err != nil {
		return nil, err
	}
	wanted := make(map[types.ProjectStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	var spans []ProjectSpan
	for i := range projects {
		if !wanted[projects[i].Status] {
			continue
		}
		funding, err := db.DB(ctx).ListFundingForProject(ctx, projects[i].ProjectID)
		if err != nil {
			return nil, err
		}
		total := TotalEffortDays(funding)
		if total == 0 {
			continue
		}
		spans = append(spans, ProjectSpan{
			Start:       *projects[i].StartDate,
			End:         *projects[i].EndDate,
			TotalEffort: total,
		})
	}
	return EffortSeries(start, end, spans), nil
}

// TotalEffortDays sums the funded effort across funding sources.
func TotalEffortDays(funding []models.Funding) int64 {
	var total int64
	for i := range funding {
		total += funding[i].Effort()
	}
	return total
}

// InternalEffortDays sums the funded effort contributed by Internal
// funding sources only.
func InternalEffortDays(funding []models.Funding) int64 {
	var total int64
	for i := range funding {
		if funding[i].Source == types.FundingInternal {
			total += funding[i].Effort()
		}
	}
	return total
}

// GetInternalEffortTimeseries aggregates effort per day over the period
// for internally funded work. Only the internal share of a project's
// funding contributes; externally funded effort shows up through the
// charges instead.
func GetInternalEffortTimeseries(ctx context.Context, start, end time.Time) (*Timeseries, error) {
	projects, err := db.DB(ctx).ListProjectsOverlapping(ctx, start, end, false)
	if err != nil {
		return nil, err
	}
	var spans []ProjectSpan
	for i := range projects {
		funding, err := db.DB(ctx).ListFundingForProject(ctx, projects[i].ProjectID)
		if err != nil {
			return nil, err
		}
		total := InternalEffortDays(funding)
		if total == 0 {
			continue
		}
		spans = append(spans, ProjectSpan{
			Start:       *projects[i].StartDate,
			End:         *projects[i].EndDate,
			TotalEffort: total,
		})
	}
	return EffortSeries(start, end, spans), nil
}

// GetCapacityPlanning assembles the capacity planning traces: overall
// team capacity plus cumulative project effort by status.
func GetCapacityPlanning(ctx context.Context, start, end time.Time) (*TimeseriesData, error) {
	capacity, err := GetCapacityTimeseries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	data := &TimeseriesData{
		Dates: capacity.Dates,
		Traces: []Trace{
			{Label: "Capacity", Colour: "darkgreen", Values: capacity.Values},
		},
	}
	for _, st := range statusTraces {
		effort, err := GetEffortTimeseries(ctx, start, end, st.statuses)
		if err != nil {
			return nil, err
		}
		data.Traces = append(data.Traces, Trace{Label: st.label, Colour: st.colour, Values: effort.Values})
	}
	return data, nil
}

// costRecoveryTraces builds the cost recovery percentages: average
// capacity per team member, capacity used across all projects (charged
// plus internal), and capacity used for charged projects alone.
func costRecoveryTraces(capacity, charged, internal, members *Timeseries) []Trace {
	avgCapacityPct := capacity.Div(members).Scale(100)
	totalCapacityPct := charged.Add(internal).Div(members).Scale(100)
	chargedCapacityPct := charged.Div(members).Scale(100)
	return []Trace{
		{Label: "Average capacity for project work %", Colour: "gold", Values: avgCapacityPct.Values},
		{Label: "Fraction of capacity used for all projects %", Colour: "navy", Values: totalCapacityPct.Values},
		{Label: "Fraction of capacity used for charged projects %", Colour: "green", Values: chargedCapacityPct.Values},
	}
}

// GetCostRecovery assembles the cost recovery view over the previous
// three years: capacity available for project work, capacity used across
// all projects, capacity actually charged, and the monthly charge totals.
func GetCostRecovery(ctx context.Context, now time.Time) (*CostRecoveryData, error) {
	spans := MonthSpansForPreviousYears(now, 3)
	start, end := spans[0].Start, spans[len(spans)-1].End

	totals, err := db.DB(ctx).MonthlyChargeTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	charged, monthly := CostRecoverySeries(spans, totals, models.DefaultDailyRate)

	internal, err := GetInternalEffortTimeseries(ctx, start, end)
	if err != nil {
		return nil, err
	}

	windows, err := db.DB(ctx).ListCapacityWindows(ctx, end)
	if err != nil {
		return nil, err
	}
	capacity := CapacitySeries(start, end, windows)
	members := TeamMembersSeries(start, end, windows)

	months := make([]string, len(spans))
	for i, span := range spans {
		months[i] = span.Start.Format("Jan 2006")
	}

	return &CostRecoveryData{
		TimeseriesData: TimeseriesData{
			Dates:  charged.Dates,
			Traces: costRecoveryTraces(capacity, charged, internal, members),
		},
		Months:        months,
		MonthlyTotals: monthly,
	}, nil
}
