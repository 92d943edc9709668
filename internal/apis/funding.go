package apis

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/procat-rse/procatsrv/pkg/api"
	"github.com/shopspring/decimal"
)

func fundingToResponse(f *models.Funding) api.FundingResponse {
	return api.FundingResponse{
		FundingID:    f.FundingID.String(),
		ProjectID:    f.ProjectID.String(),
		Source:       string(f.Source),
		FundingBody:  f.FundingBody,
		ProjectCode:  f.ProjectCode,
		CostCentre:   f.CostCentre,
		Activity:     f.Activity,
		AnalysisCode: f.AnalysisCode,
		ExpiryDate:   formatOptionalDate(f.ExpiryDate),
		Budget:       f.Budget.StringFixed(2),
		DailyRate:    f.DailyRate.StringFixed(2),
		Effort:       f.Effort(),
	}
}

func fundingFromRequest(req *api.FundingRequest) (*models.Funding, error) {
	projectID, err := uuidFromString(req.ProjectID)
	if err != nil {
		return nil, err
	}
	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		return nil, httpx.ErrInvalidRequest()
	}
	funding := &models.Funding{
		ProjectID:    projectID,
		Source:       types.FundingSource(req.Source),
		FundingBody:  req.FundingBody,
		ProjectCode:  req.ProjectCode,
		CostCentre:   req.CostCentre,
		Activity:     req.Activity,
		AnalysisCode: req.AnalysisCode,
		ExpiryDate:   parseOptionalDate(req.ExpiryDate),
		Budget:       budget,
		DailyRate:    models.DefaultDailyRate,
	}
	if req.DailyRate != "" {
		rate, err := decimal.NewFromString(req.DailyRate)
		if err != nil {
			return nil, httpx.ErrInvalidRequest()
		}
		funding.DailyRate = rate
	}
	return funding, nil
}

func createFunding(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.FundingRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	funding, err := fundingFromRequest(&req)
	if err != nil {
		return nil, err
	}
	if err := projects.ValidateFunding(funding); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateFunding(ctx, funding); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/funding/" + funding.FundingID.String(),
		Response:   fundingToResponse(funding),
	}, nil
}

func getFunding(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fundingID, err := pathUUID(r, "fundingID")
	if err != nil {
		return nil, err
	}
	funding, err := db.DB(ctx).GetFunding(ctx, fundingID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: fundingToResponse(funding)}, nil
}

func updateFunding(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fundingID, err := pathUUID(r, "fundingID")
	if err != nil {
		return nil, err
	}
	var req api.FundingRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	funding, err := fundingFromRequest(&req)
	if err != nil {
		return nil, err
	}
	funding.FundingID = fundingID
	if err := projects.ValidateFunding(funding); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).UpdateFunding(ctx, funding); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: fundingToResponse(funding)}, nil
}

func deleteFunding(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	fundingID, err := pathUUID(r, "fundingID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteFunding(ctx, fundingID); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listFunding(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var list []models.Funding
	var err error
	if projectRef := r.URL.Query().Get("project_id"); projectRef != "" {
		projectID, uerr := uuidFromString(projectRef)
		if uerr != nil {
			return nil, uerr
		}
		list, err = db.DB(ctx).ListFundingForProject(ctx, projectID)
	} else {
		limit, offset := pagination(r)
		list, err = db.DB(ctx).ListFunding(ctx, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	rsp := make([]api.FundingResponse, len(list))
	for i := range list {
		rsp[i] = fundingToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}
