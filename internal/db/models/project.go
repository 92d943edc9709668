package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/types"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 project_id   | uuid                    |           | not null | uuid_generate_v4()
 name         | character varying(256)  |           | not null |
 nature       | character varying(16)   |           | not null |
 pi           | character varying(256)  |           | not null |
 department_id| uuid                    |           | not null |
 start_date   | date                    |           |          |
 end_date     | date                    |           |          |
 lead_id      | uuid                    |           |          |
 status       | character varying(16)   |           | not null | 'Draft'
 charging     | character varying(16)   |           | not null | 'Actual'
Indexes:
    "projects_pkey" PRIMARY KEY, btree (project_id)
    "projects_name_key" UNIQUE CONSTRAINT, btree (name)
Foreign-key constraints:
    "projects_department_id_fkey" FOREIGN KEY (department_id) REFERENCES departments(department_id)
    "projects_lead_id_fkey" FOREIGN KEY (lead_id) REFERENCES users(user_id)
*/

// Project is a software project. Dates and lead are optional while the
// project is a Draft; the projects package enforces the rest.
type Project struct {
	ProjectID    uuid.UUID            `db:"project_id"`
	Name         string               `db:"name"`
	Nature       types.ProjectNature  `db:"nature"`
	PI           string               `db:"pi"`
	DepartmentID uuid.UUID            `db:"department_id"`
	StartDate    *time.Time           `db:"start_date"`
	EndDate      *time.Time           `db:"end_date"`
	LeadID       *uuid.UUID           `db:"lead_id"`
	Status       types.ProjectStatus  `db:"status"`
	Charging     types.ChargingMethod `db:"charging"`
}
