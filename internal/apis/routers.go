package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/procat-rse/procatsrv/internal/httpx"
)

type handlerParam struct {
	Method  string
	Path    string
	Handler httpx.RequestHandler
}

var resourceHandlers = []handlerParam{
	{Method: http.MethodPost, Path: "/projects", Handler: createProject},
	{Method: http.MethodGet, Path: "/projects", Handler: listProjects},
	{Method: http.MethodGet, Path: "/projects/{projectID}", Handler: getProject},
	{Method: http.MethodPut, Path: "/projects/{projectID}", Handler: updateProject},
	{Method: http.MethodDelete, Path: "/projects/{projectID}", Handler: deleteProject},
	{Method: http.MethodGet, Path: "/projects/{projectID}/status", Handler: getProjectStatus},

	{Method: http.MethodPost, Path: "/funding", Handler: createFunding},
	{Method: http.MethodGet, Path: "/funding", Handler: listFunding},
	{Method: http.MethodGet, Path: "/funding/{fundingID}", Handler: getFunding},
	{Method: http.MethodPut, Path: "/funding/{fundingID}", Handler: updateFunding},
	{Method: http.MethodDelete, Path: "/funding/{fundingID}", Handler: deleteFunding},

	{Method: http.MethodPost, Path: "/capacities", Handler: createCapacity},
	{Method: http.MethodGet, Path: "/capacities", Handler: listCapacities},
	{Method: http.MethodDelete, Path: "/capacities/{capacityID}", Handler: deleteCapacity},

	{Method: http.MethodPost, Path: "/departments", Handler: createDepartment},
	{Method: http.MethodGet, Path: "/departments", Handler: listDepartments},
	{Method: http.MethodGet, Path: "/departments/{departmentID}", Handler: getDepartment},
	{Method: http.MethodDelete, Path: "/departments/{departmentID}", Handler: deleteDepartment},

	{Method: http.MethodPost, Path: "/analysis-codes", Handler: createAnalysisCode},
	{Method: http.MethodGet, Path: "/analysis-codes", Handler: listAnalysisCodes},
	{Method: http.MethodGet, Path: "/analysis-codes/{code}", Handler: getAnalysisCode},
	{Method: http.MethodDelete, Path: "/analysis-codes/{code}", Handler: deleteAnalysisCode},

	{Method: http.MethodPost, Path: "/time-entries", Handler: createTimeEntry},
	{Method: http.MethodGet, Path: "/time-entries", Handler: listTimeEntries},
	{Method: http.MethodDelete, Path: "/time-entries/{timeEntryID}", Handler: deleteTimeEntry},

	{Method: http.MethodPost, Path: "/jobs", Handler: enqueueJob},
	{Method: http.MethodGet, Path: "/jobs", Handler: listJobs},
	{Method: http.MethodGet, Path: "/jobs/{jobID}", Handler: getJob},

	{Method: http.MethodGet, Path: "/analytics/capacity-planning", Handler: getCapacityPlanning},
	{Method: http.MethodGet, Path: "/analytics/cost-recovery", Handler: getCostRecovery},

	{Method: http.MethodPost, Path: "/import", Handler: importProjects},
}

// Router mounts the API. Chart and CSV endpoints write their bodies
// directly and bypass the JSON envelope.
func Router(r chi.Router) {
	for _, handler := range resourceHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
	r.Get("/reports/charges", downloadChargesReport)
	r.Get("/reports/charges/archive", downloadArchivedReport)
	r.Get("/analytics/capacity-planning/chart", capacityPlanningChart)
	r.Get("/analytics/cost-recovery/chart", costRecoveryChart)
}
