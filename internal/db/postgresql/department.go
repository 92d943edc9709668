package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

// CreateDepartment inserts a new department and fills in its generated ID.
func (p *proCatDb) CreateDepartment(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, faculty)
		VALUES ($1, $2)
		RETURNING department_id;
	`
	err := p.conn.QueryRow(ctx, query, department.Name, string(department.Faculty)).
		Scan(&department.DepartmentID)
	if err != nil {
		log.Ctx(ctx).Info().Str("name", department.Name).Msg("failed to insert department")
		return dberror.Map(err)
	}
	return nil
}

// GetDepartment retrieves a department by ID.
func (p *proCatDb) GetDepartment(ctx context.Context, departmentID uuid.UUID) (*models.Department, error) {
	query := `
		SELECT department_id, name, faculty
		FROM departments
		WHERE department_id = $1;
	`
	row := p.conn.QueryRow(ctx, query, departmentID)

	var department models.Department
	err := row.Scan(&department.DepartmentID, &department.Name, &department.Faculty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Ctx(ctx).Info().Str("department_id", departmentID.String()).Msg("department not found")
			return nil, dberror.ErrNotFound.Msg("department not found")
		}
		log.Ctx(ctx).Error().Err(err).Msg("failed to retrieve department")
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &department, nil
}

// ListDepartments returns all departments ordered by name.
func (p *proCatDb) ListDepartments(ctx context.Context) ([]models.Department, error) {
	query := `
		SELECT department_id, name, faculty
		FROM departments
		ORDER BY name;
	`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var department models.Department
		if err := rows.Scan(&department.DepartmentID, &department.Name, &department.Faculty); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		departments = append(departments, department)
	}
	return departments, rows.Err()
}

// DeleteDepartment deletes a department. Departments referenced by
// projects cannot be deleted.
func (p *proCatDb) DeleteDepartment(ctx context.Context, departmentID uuid.UUID) error {
	query := `
		DELETE FROM departments
		WHERE department_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, departmentID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("department_id", departmentID.String()).Msg("failed to delete department")
		return dberror.Map(err)
	}
	return nil
}
