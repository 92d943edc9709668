package apis

import (
	"fmt"
	"net/http"
	"time"

	"github.com/procat-rse/procatsrv/internal/charging"
	"github.com/procat-rse/procatsrv/internal/httpx"
)

// downloadChargesReport regenerates the month's charges and streams the
// journal CSV. The generated report is archived as a side effect.
func downloadChargesReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	month, err := monthParam(r, time.Now())
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}

	content, err := charging.GenerateReport(ctx, month, time.Now())
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	if err := charging.ArchiveReport(ctx, month, content); err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}

	sendCSV(w, month, content)
}

// downloadArchivedReport streams a previously archived report without
// regenerating charges.
func downloadArchivedReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	month, err := monthParam(r, time.Now())
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	content, err := charging.LoadReport(ctx, month)
	if err != nil {
		httpx.ToHttpError(err).Send(w)
		return
	}
	sendCSV(w, month, content)
}

func sendCSV(w http.ResponseWriter, month time.Time, content []byte) {
	filename := fmt.Sprintf("charges_report_%d-%d.csv", int(month.Month()), month.Year())
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
