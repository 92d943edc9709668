package apis

import (
	"net/http"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/procat-rse/procatsrv/pkg/api"
)

func projectToResponse(p *models.Project) api.ProjectResponse {
	return api.ProjectResponse{
		ProjectID:    p.ProjectID.String(),
		Name:         p.Name,
		Nature:       string(p.Nature),
		PI:           p.PI,
		DepartmentID: p.DepartmentID.String(),
		StartDate:    formatOptionalDate(p.StartDate),
		EndDate:      formatOptionalDate(p.EndDate),
		LeadID:       formatOptionalUUID(p.LeadID),
		Status:       string(p.Status),
		Charging:     string(p.Charging),
	}
}

func projectFromRequest(req *api.ProjectRequest) (*models.Project, error) {
	departmentID, err := uuidFromString(req.DepartmentID)
	if err != nil {
		return nil, err
	}
	project := &models.Project{
		Name:         req.Name,
		Nature:       types.ProjectNature(req.Nature),
		PI:           req.PI,
		DepartmentID: departmentID,
		StartDate:    parseOptionalDate(req.StartDate),
		EndDate:      parseOptionalDate(req.EndDate),
		LeadID:       parseOptionalUUID(req.LeadID),
		Status:       types.ProjectStatus(req.Status),
		Charging:     types.ChargingMethod(req.Charging),
	}
	if req.Nature == "" {
		project.Nature = types.NatureStandard
	}
	if req.Status == "" {
		project.Status = types.ProjectDraft
	}
	if req.Charging == "" {
		project.Charging = types.ChargingActual
	}
	return project, nil
}

func createProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	var req api.ProjectRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	project, err := projectFromRequest(&req)
	if err != nil {
		return nil, err
	}
	if err := projects.ValidateProject(project); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
		Location:   "/projects/" + project.ProjectID.String(),
		Response:   projectToResponse(project),
	}, nil
}

func getProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, err := pathUUID(r, "projectID")
	if err != nil {
		return nil, err
	}
	project, err := db.DB(ctx).GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: projectToResponse(project)}, nil
}

func updateProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, err := pathUUID(r, "projectID")
	if err != nil {
		return nil, err
	}
	var req api.ProjectRequest
	if err := readRequest(r, &req); err != nil {
		return nil, err
	}
	project, err := projectFromRequest(&req)
	if err != nil {
		return nil, err
	}
	project.ProjectID = projectID
	if err := projects.ValidateProject(project); err != nil {
		return nil, err
	}
	if err := db.DB(ctx).UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: projectToResponse(project)}, nil
}

func deleteProject(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, err := pathUUID(r, "projectID")
	if err != nil {
		return nil, err
	}
	if err := db.DB(ctx).DeleteProject(ctx, projectID); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusNoContent}, nil
}

func listProjects(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	limit, offset := pagination(r)
	list, err := db.DB(ctx).ListProjects(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	rsp := make([]api.ProjectResponse, len(list))
	for i := range list {
		rsp[i] = projectToResponse(&list[i])
	}
	return &httpx.Response{StatusCode: http.StatusOK, Response: rsp}, nil
}

// projectStatusResponse is the derived health view of a project.
type projectStatusResponse struct {
	Project     api.ProjectResponse  `json:"project"`
	TotalEffort *int64               `json:"total_effort,omitempty"`
	DaysLeft    *projects.EffortLeft `json:"days_left,omitempty"`
	Deadline    *projects.Deadline   `json:"deadline,omitempty"`
}

func getProjectStatus(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()
	projectID, err := pathUUID(r, "projectID")
	if err != nil {
		return nil, err
	}
	report, err := projects.GetStatusReport(ctx, projectID, time.Now())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response: projectStatusResponse{
			Project:     projectToResponse(report.Project),
			TotalEffort: report.TotalEffort,
			DaysLeft:    report.DaysLeft,
			Deadline:    report.Deadline,
		},
	}, nil
}
