package apis

import (
	"net/http"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/pkg/api"
)

func timeEntryToResponse(e *models.TimeEntry) api.TimeEntryResponse {
	return api.TimeEntryResponse{
		TimeEntryID:     e.TimeEntryID.String(),
		UserID:          e.UserID.String(),
		ProjectID:       e.ProjectID.String(),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		ClockifyID:      e.ClockifyID,
		MonthlyChargeID: formatOptionalUUID(e.MonthlyChargeID),
		Hours:           e.Hours(),
	}
}

func createTimeEntry(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.TimeEntryRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	userID, err := uuidFromString(req.UserID)
	if err != nil {
		return nil, err
	}
	projectID, err := uuidFromString(req.ProjectID)
	if err != nil {
		return nil, err
	}
	entry := &models.TimeEntry{
		UserID:    userID,
		ProjectID: projectID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := db.DB(ctx).CreateTimeEntry(ctx, entry); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/time-entries/" + entry.TimeEntryID.String(),
		Response:   timeEntryToResponse(entry),
	}, nil
}

func deleteTimeEntry(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	timeEntryID, err := pathUUID(r, "timeEntryID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteTimeEntry(ctx, timeEntryID); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listTimeEntries(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	limit, offset := pagination(r)
	filter := postgresql.TimeEntryFilter{
		Limit:        limit,
		Offset:       offset,
		UnbilledOnly: r.URL.Query().Get("unbilled") == "true",
	}
	if projectRef := r.URL.Query().Get("project_id"); projectRef != "" {
		projectID, err := uuidFromString(projectRef)
		if err != nil {
			return nil, err
		}
		filter.ProjectID = projectID
	}
	if userRef := r.URL.Query().Get("user_id"); userRef != "" {
		userID, err := uuidFromString(userRef)
		if err != nil {
			return nil, err
		}
		filter.UserID = userID
	}
	var err error
	if filter.From, err = dateParam(r, "from", time.Time{}); err != nil {
		return nil, err
	}
	if filter.To, err = dateParam(r, "to", time.Time{}); err != nil {
		return nil, err
	}

	list, err := db.DB(ctx).ListTimeEntries(ctx, filter)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.TimeEntryResponse, len(list))
	for i := range list {
		rsp[i] = timeEntryToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}
