package apis

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/pkg/api"
)

func analysisCodeToResponse(ac *models.AnalysisCode) api.AnalysisCodeResponse {
	return api.AnalysisCodeResponse{
		Code:        ac.Code,
		Description: ac.Description,
		Notes:       ac.Notes,
	}
}

func pathCode(r *http.Request) (int, error) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil {
		return 0, httpx.ErrInvalidRequest()
	}
	return code, nil
}

func createAnalysisCode(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.AnalysisCodeRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	code := &models.AnalysisCode{
		Code:        req.Code,
		Description: req.Description,
		Notes:       req.Notes,
	}
	if err := db.DB(ctx).CreateAnalysisCode(ctx, code); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/analysis-codes/" + strconv.Itoa(code.Code),
		Response:   analysisCodeToResponse(code),
	}, nil
}

func getAnalysisCode(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	code, err := pathCode(r)
	if err != nil {
		return nil, err
	}
	ac, err := db.DB(ctx).GetAnalysisCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: analysisCodeToResponse(ac)}, nil
}

func listAnalysisCodes(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	list, err := db.DB(ctx).ListAnalysisCodes(ctx)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.AnalysisCodeResponse, len(list))
	for i := range list {
		rsp[i] = analysisCodeToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}

func deleteAnalysisCode(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	code, err := pathCode(r)
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteAnalysisCode(ctx, code); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}
