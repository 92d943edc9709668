package models

import (
	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/types"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 department_id| uuid                    |           | not null | uuid_generate_v4()
 name         | character varying(128)  |           | not null |
 faculty      | character varying(64)   |           | not null |
Indexes:
    "departments_pkey" PRIMARY KEY, btree (department_id)
    "departments_name_key" UNIQUE CONSTRAINT, btree (name)
*/

// Department is a university department, centre or school that projects
// belong to.
type Department struct {
	DepartmentID uuid.UUID     `db:"department_id"`
	Name         string        `db:"name"`
	Faculty      types.Faculty `db:"faculty"`
}
