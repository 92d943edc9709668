package apis

import (
	"net/http"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/procat-rse/procatsrv/pkg/api"
)

func departmentToResponse(d *models.Department) api.DepartmentResponse {
	return api.DepartmentResponse{
		DepartmentID: d.DepartmentID.String(),
		Name:         d.Name,
		Faculty:      string(d.Faculty),
	}
}

func createDepartment(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.DepartmentRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	faculty := types.Faculty(req.Faculty)
	if !faculty.IsValid() {
		return nil, httpx.ErrInvalidRequest()
	}
	department := &models.Department{Name: req.Name, Faculty: faculty}
	if err := db.DB(ctx).CreateDepartment(ctx, department); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/departments/" + department.DepartmentID.String(),
		Response:   departmentToResponse(department),
	}, nil
}

func getDepartment(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	departmentID, err := pathUUID(r, "departmentID")
	if err != nil {
		return nil, err
	}
	department, err := db.DB(ctx).GetDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: departmentToResponse(department)}, nil
}

func listDepartments(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	list, err := db.DB(ctx).ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.DepartmentResponse, len(list))
	for i := range list {
		rsp[i] = departmentToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}

func deleteDepartment(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	departmentID, err := pathUUID(r, "departmentID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteDepartment(ctx, departmentID); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}
