package analytics

import (
	"bytes"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	plotWidth  = "1000px"
	plotHeight = "500px"
)

// renderable is satisfied by every go-echarts chart.
type renderable interface {
	Render(w io.Writer) error
}

// RenderHTML renders a chart as a self-contained HTML document that the
// front end embeds in an iframe.
func RenderHTML(chart renderable) ([]byte, error) {
	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newTimeseriesLine(title string, data *TimeseriesData) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: plotWidth, Height: plotHeight}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", XAxisIndex: []int{0}}),
	)

	dates := make([]string, len(data.Dates))
	for i, d := range data.Dates {
		dates[i] = d.Format("2006-01-02")
	}
	line.SetXAxis(dates)

	for _, trace := range data.Traces {
		points := make([]opts.LineData, len(trace.Values))
		for i, v := range trace.Values {
			points[i] = opts.LineData{Value: v}
		}
		line.AddSeries(trace.Label, points,
			charts.WithLineStyleOpts(opts.LineStyle{Color: trace.Colour}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: trace.Colour}),
		)
	}
	return line
}

// CapacityPlanningChart plots team capacity against cumulative project
// effort by status.
func CapacityPlanningChart(data *TimeseriesData) *charts.Line {
	return newTimeseriesLine("Project effort and team capacity over time", data)
}

// CostRecoveryCharts plots the cost recovery traces and the monthly
// charge totals bar chart.
func CostRecoveryCharts(data *CostRecoveryData) (*charts.Line, *charts.Bar) {
	line := newTimeseriesLine("Team capacity and project charging over time", &data.TimeseriesData)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: plotWidth, Height: plotHeight}),
		charts.WithTitleOpts(opts.Title{Title: "Total monthly charges"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Month-Year"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Total charge (£)"}),
	)
	points := make([]opts.BarData, len(data.MonthlyTotals))
	for i, v := range data.MonthlyTotals {
		points[i] = opts.BarData{Value: v}
	}
	bar.SetXAxis(data.Months).AddSeries("Total charge", points)
	return line, bar
}
