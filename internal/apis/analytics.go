package apis

import (
	"net/http"
	"time"

	"github.com/procat-rse/procatsrv/internal/analytics"
	"github.com/procat-rse/procatsrv/internal/httpx"
)

// capacityPlanningPeriod defaults to a year ahead from today; from/to
// query parameters override it.
func capacityPlanningPeriod(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	start, err := dateParam(r, "from", now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := dateParam(r, "to", start.AddDate(1, 0, 0))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, httpx.ErrInvalidRequest()
	}
	return start, end, nil
}

func getCapacityPlanning(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	start, end, err := capacityPlanningPeriod(r)
	if err != nil {
		return nil, err
	}
	data, err := analytics.GetCapacityPlanning(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: data}, nil
}

func getCostRecovery(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	data, err := analytics.GetCostRecovery(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: data}, nil
}

func capacityPlanningChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start, end, err := capacityPlanningPeriod(r)
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	data, err := analytics.GetCapacityPlanning(ctx, start, end)
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	html, err := analytics.RenderHTML(analytics.CapacityPlanningChart(data))
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func costRecoveryChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, err := analytics.GetCostRecovery(ctx, time.Now())
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	line, bar := analytics.CostRecoveryCharts(data)

	lineHTML, err := analytics.RenderHTML(line)
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	barHTML, err := analytics.RenderHTML(bar)
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(lineHTML)
	_, _ = w.Write(barHTML)
}
