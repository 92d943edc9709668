package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"
	"sigs.k8s.io/yaml"
)

var (
	ErrImport         apperrors.Error = apperrors.New("error importing projects").SetStatusCode(http.StatusBadRequest)
	ErrInvalidFormat  apperrors.Error = ErrImport.New("document does not match the import schema")
	ErrUnknownLead    apperrors.Error = ErrImport.New("unknown project lead")
	ErrInvalidDecimal apperrors.Error = ErrImport.New("invalid decimal value")
)

// Import documents are YAML (or JSON) with a top-level projects list.
// Validation happens against this schema before anything touches the
// database.
const importSchema = `{
	"type": "object",
	"required": ["projects"],
	"additionalProperties": false,
	"properties": {
		"projects": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "nature", "pi", "department"],
				"additionalProperties": false,
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"nature": {"type": "string"},
					"pi": {"type": "string"},
					"department": {"type": "string", "minLength": 1},
					"lead": {"type": "string"},
					"start_date": {"type": "string", "format": "date"},
					"end_date": {"type": "string", "format": "date"},
					"status": {"type": "string"},
					"charging": {"type": "string"},
					"funding": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["source", "budget"],
							"additionalProperties": false,
							"properties": {
								"source": {"type": "string"},
								"funding_body": {"type": "string"},
								"project_code": {"type": "string"},
								"cost_centre": {"type": "string"},
								"activity": {"type": "string"},
								"analysis_code": {"type": "integer"},
								"expiry_date": {"type": "string", "format": "date"},
								"budget": {"type": "number"},
								"daily_rate": {"type": "number"}
							}
						}
					}
				}
			}
		}
	}
}`

// FundingImport is one funding source of an imported project.
type FundingImport struct {
	Source       string      `json:"source"`
	FundingBody  string      `json:"funding_body"`
	ProjectCode  string      `json:"project_code"`
	CostCentre   string      `json:"cost_centre"`
	Activity     string      `json:"activity"`
	AnalysisCode *int        `json:"analysis_code"`
	ExpiryDate   string      `json:"expiry_date"`
	Budget       json.Number `json:"budget"`
	DailyRate    json.Number `json:"daily_rate"`
}

// ProjectImport is one project of an import document.
type ProjectImport struct {
	Name       string          `json:"name"`
	Nature     string          `json:"nature"`
	PI         string          `json:"pi"`
	Department string          `json:"department"`
	Lead       string          `json:"lead"`
	StartDate  string          `json:"start_date"`
	EndDate    string          `json:"end_date"`
	Status     string          `json:"status"`
	Charging   string          `json:"charging"`
	Funding    []FundingImport `json:"funding"`
}

// Document is a parsed, schema-valid import file.
type Document struct {
	Projects []ProjectImport `json:"projects"`
}

// Parse converts a YAML or JSON import file into a Document, validating
// it against the import schema first.
func Parse(data []byte) (*Document, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, ErrImport.Err(err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(importSchema),
		gojsonschema.NewBytesLoader(jsonData),
	)
	if err != nil {
		return nil, ErrImport.Err(err)
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, ErrInvalidFormat.Msg(strings.Join(msgs, "; "))
	}

	var doc Document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, ErrImport.Err(err)
	}
	return &doc, nil
}

// Result summarises one import run.
type Result struct {
	Projects int `json:"projects"`
	Funding  int `json:"funding"`
}

// Import creates the document's projects and their funding. Departments
// are created on first use; leads must already exist. The whole document
// is validated row by row, and the run stops at the first bad record.
func Import(ctx context.Context, doc *Document) (*Result, error) {
	departments, err := db.DB(ctx).ListDepartments(ctx)
	if err != nil {
		return nil, ErrImport.Err(err)
	}
	departmentsByName := make(map[string]*models.Department, len(departments))
	for i := range departments {
		departmentsByName[departments[i].Name] = &departments[i]
	}

	result := &Result{}
	for i := range doc.Projects {
		record := &doc.Projects[i]

		department, ok := departmentsByName[record.Department]
		if !ok {
			department = &models.Department{Name: record.Department, Faculty: types.FacultyOther}
			if err := db.DB(ctx).CreateDepartment(ctx, department); err != nil {
				return nil, ErrImport.Err(err)
			}
			departmentsByName[department.Name] = department
		}

		project, err := buildProject(ctx, record, department)
		if err != nil {
			return nil, err
		}
		if err := projects.ValidateProject(project); err != nil {
			return nil, ErrImport.Msg(fmt.Sprintf("project %s", record.Name)).Err(err)
		}
		if err := db.DB(ctx).CreateProject(ctx, project); err != nil {
			return nil, ErrImport.Err(err)
		}
		result.Projects++

		for j := range record.Funding {
			funding, err := buildFunding(&record.Funding[j], project.ProjectID)
			if err != nil {
				return nil, err
			}
			if err := projects.ValidateFunding(funding); err != nil {
				return nil, ErrImport.Msg(fmt.Sprintf("funding for project %s", record.Name)).Err(err)
			}
			if err := db.DB(ctx).CreateFunding(ctx, funding); err != nil {
				return nil, ErrImport.Err(err)
			}
			result.Funding++
		}
	}

	log.Ctx(ctx).Info().
		Int("projects", result.Projects).
		Int("funding", result.Funding).
		Msg("import finished")
	return result, nil
}

func buildProject(ctx context.Context, record *ProjectImport, department *models.Department) (*models.Project, error) {
	project := &models.Project{
		Name:         record.Name,
		Nature:       types.ProjectNature(record.Nature),
		PI:           record.PI,
		DepartmentID: department.DepartmentID,
		Status:       types.ProjectStatus(record.Status),
		Charging:     types.ChargingMethod(record.Charging),
	}
	if record.Nature == "" {
		project.Nature = types.NatureStandard
	}
	if record.Status == "" {
		project.Status = types.ProjectDraft
	}
	if record.Charging == "" {
		project.Charging = types.ChargingActual
	}

	var err error
	if project.StartDate, err = parseDate(record.StartDate); err != nil {
		return nil, err
	}
	if project.EndDate, err = parseDate(record.EndDate); err != nil {
		return nil, err
	}

	if record.Lead != "" {
		lead, err := db.DB(ctx).GetUserByUsername(ctx, record.Lead)
		if err != nil {
			return nil, ErrUnknownLead.Msg(record.Lead)
		}
		project.LeadID = &lead.UserID
	}
	return project, nil
}

func buildFunding(record *FundingImport, projectID uuid.UUID) (*models.Funding, error) {
	funding := &models.Funding{
		ProjectID:    projectID,
		Source:       types.FundingSource(record.Source),
		FundingBody:  record.FundingBody,
		ProjectCode:  record.ProjectCode,
		CostCentre:   record.CostCentre,
		Activity:     record.Activity,
		AnalysisCode: record.AnalysisCode,
		DailyRate:    models.DefaultDailyRate,
	}

	expiry, err := parseDate(record.ExpiryDate)
	if err != nil {
		return nil, err
	}
	funding.ExpiryDate = expiry

	if funding.Budget, err = parseDecimal(record.Budget); err != nil {
		return nil, err
	}
	if record.DailyRate != "" {
		if funding.DailyRate, err = parseDecimal(record.DailyRate); err != nil {
			return nil, err
		}
	}
	return funding, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, ErrImport.Err(err)
	}
	return &t, nil
}

func parseDecimal(value json.Number) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value.String())
	if err != nil {
		return decimal.Zero, ErrInvalidDecimal.Msg(value.String())
	}
	return d, nil
}
