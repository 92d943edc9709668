package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
)

const projectColumns = `project_id, name, nature, pi, department_id, start_date, end_date, lead_id, status, charging`

func scanProject(row pgx.Row, project *models.Project) error {
	return row.Scan(
		&project.ProjectID,
		&project.Name,
		&project.Nature,
		&project.PI,
		&project.DepartmentID,
		&project.StartDate,
		&project.EndDate,
		&project.LeadID,
		&project.Status,
		&project.Charging,
	)
}

func collectProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()
	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ProjectID,
			&project.Name,
			&project.Nature,
			&project.PI,
			&project.DepartmentID,
			&project.StartDate,
			&project.EndDate,
			&project.LeadID,
			&project.Status,
			&project.Charging,
		)
		if err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// CreateProject inserts a new project and fills in its generated ID.
func (p *proCatDb) CreateProject(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (name, nature, pi, department_id, start_date, end_date, lead_id, status, charging)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING project_id;
	`
	err := p.conn.QueryRow(ctx, query,
		project.Name,
		string(project.Nature),
		project.PI,
		project.DepartmentID,
		project.StartDate,
		project.EndDate,
		project.LeadID,
		string(project.Status),
		string(project.Charging),
	).Scan(&project.ProjectID)
	if err != nil {
		log.Ctx(ctx).Info().Str("name", project.Name).Msg("failed to insert project")
		return dberror.Map(err)
	}
	return nil
}

// GetProject retrieves a project by ID.
func (p *proCatDb) GetProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE project_id = $1;
	`
	var project models.Project
	err := scanProject(p.conn.QueryRow(ctx, query, projectID), &project)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Ctx(ctx).Info().Str("project_id", projectID.String()).Msg("project not found")
			return nil, dberror.ErrNotFound.Msg("project not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve project")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &project, nil
}

// GetProjectByName retrieves a project by its unique name.
func (p *proCatDb) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE name = $1;
	`
	var project models.Project
	err := scanProject(p.conn.QueryRow(ctx, query, name), &project)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("project not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &project, nil
}

// UpdateProject updates all mutable fields of a project.
func (p *proCatDb) UpdateProject(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET name = $2, nature = $3, pi = $4, department_id = $5,
		    start_date = $6, end_date = $7, lead_id = $8, status = $9, charging = $10
		WHERE project_id = $1;
	`
	rowsAffected, err := p.conn.Exec(ctx, query,
		project.ProjectID,
		project.Name,
		string(project.Nature),
		project.PI,
		project.DepartmentID,
		project.StartDate,
		project.EndDate,
		project.LeadID,
		string(project.Status),
		string(project.Charging),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("project_id", project.ProjectID.String()).Msg("failed to update project")
		return dberror.Map(err)
	}
	if rowsAffected == 0 {
		return dberror.ErrNotFound.Msg("project not found")
	}
	return nil
}

// DeleteProject deletes a project. Associated funding is removed by the
// cascade.
func (p *proCatDb) DeleteProject(ctx context.Context, projectID uuid.UUID) error {
	query := `
		DELETE FROM projects
		WHERE project_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, projectID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("project_id", projectID.String()).Msg("failed to delete project")
		return dberror.Map(err)
	}
	return nil
}

// ListProjects returns projects ordered by name with limit/offset
// pagination. A limit of 0 returns everything.
func (p *proCatDb) ListProjects(ctx context.Context, limit, offset int) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY name
		LIMIT NULLIF($1, 0) OFFSET $2;
	`
	rows, err := p.conn.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return collectProjects(rows)
}

// ListProjectsByStatus returns projects whose status is in the given set.
func (p *proCatDb) ListProjectsByStatus(ctx context.Context, statuses []types.ProjectStatus) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE status = ANY($1)
		ORDER BY name;
	`
	set := make([]string, len(statuses))
	for i, s := range statuses {
		set[i] = string(s)
	}
	rows, err := p.conn.Query(ctx, query, set)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return collectProjects(rows)
}

// ListProjectsOverlapping returns dated projects overlapping [start, end),
// optionally excluding projects with Manual charging.
func (p *proCatDb) ListProjectsOverlapping(ctx context.Context, start, end time.Time, excludeManual bool) ([]models.Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE start_date IS NOT NULL AND end_date IS NOT NULL
		  AND start_date < $2 AND end_date >= $1
		  AND (NOT $3 OR charging <> 'Manual')
		ORDER BY name;
	`
	rows, err := p.conn.Query(ctx, query, start, end, excludeManual)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	return collectProjects(rows)
}
