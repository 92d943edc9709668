package apis

import (
	"net/http"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/pkg/api"
	"github.com/shopspring/decimal"
)

func capacityToResponse(c *models.Capacity) api.CapacityResponse {
	return api.CapacityResponse{
		CapacityID: c.CapacityID.String(),
		UserID:     c.UserID.String(),
		Value:      c.Value.String(),
		StartDate:  c.StartDate.Format(api.DateFormat),
	}
}

func createCapacity(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.CapacityRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	userID, err := uuidFromString(req.UserID)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return nil, httpx.ErrInvalidRequest()
	}
	startDate, err := time.Parse(api.DateFormat, req.StartDate)
	if err != nil {
		return nil, httpx.ErrInvalidRequest()
	}

	capacity := &models.Capacity{
		UserID:    userID,
		Value:     value,
		StartDate: startDate,
	}
	if err := projects.ValidateCapacity(capacity); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateCapacity(ctx, capacity); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/capacities/" + capacity.CapacityID.String(),
		Response:   capacityToResponse(capacity),
	}, nil
}

func listCapacities(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	list, err := db.DB(ctx).ListCapacities(ctx)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.CapacityResponse, len(list))
	for i := range list {
		rsp[i] = capacityToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}

func deleteCapacity(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	capacityID, err := pathUUID(r, "capacityID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteCapacity(ctx, capacityID); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}
