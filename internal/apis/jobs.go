package apis

import (
	"net/http"
	"time"

	"github.com/jackc/pgtype"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/taskqueue"
	"github.com/procat-rse/procatsrv/pkg/api"
)

func jobToResponse(j *models.Job) api.JobResponse {
	rsp := api.JobResponse{
		JobID:       j.JobID.String(),
		Name:        j.Name,
		Status:      string(j.Status),
		RunAt:       j.RunAt,
		Attempts:    j.Attempts,
		MaxAttempts: j.MaxAttempts,
		LastError:   j.LastError,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
	if j.Payload.Status == pgtype.Present {
		rsp.Payload = append(rsp.Payload, j.Payload.Bytes...)
	}
	return rsp
}

func enqueueJob(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.JobRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	runAt := time.Now()
	if req.RunAt != nil {
		runAt = *req.RunAt
	}
	var payload any
	if len(req.Payload) > 0 {
		payload = req.Payload
	}
	job, err := taskqueue.Enqueue(ctx, req.Name, payload, runAt)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusAccepted,
		Location:   "/jobs/" + job.JobID.String(),
		Response:   jobToResponse(job),
	}, nil
}

func getJob(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	jobID, err := pathUUID(r, "jobID")
	if err != nil {
		return nil, err
	}
	job, err := db.DB(ctx).GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: jobToResponse(job)}, nil
}

func listJobs(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	limit, offset := pagination(r)
	list, err := db.DB(ctx).ListJobs(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.JobResponse, len(list))
	for i := range list {
		rsp[i] = jobToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}
