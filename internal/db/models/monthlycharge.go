package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
   Column    |          Type           | Collation | Nullable |      Default
-------------+-------------------------+-----------+----------+--------------------
 charge_id   | uuid                    |           | not null | uuid_generate_v4()
 project_id  | uuid                    |           | not null |
 funding_id  | uuid                    |           | not null |
 amount      | numeric(12,2)           |           | not null |
 charge_date | date                    |           | not null |
 description | character varying(256)  |           | not null | ''
Indexes:
    "monthly_charges_pkey" PRIMARY KEY, btree (charge_id)
    "monthly_charges_project_funding_date_key" UNIQUE CONSTRAINT, btree (project_id, funding_id, charge_date)
Foreign-key constraints:
    "monthly_charges_project_id_fkey" FOREIGN KEY (project_id) REFERENCES projects(project_id)
    "monthly_charges_funding_id_fkey" FOREIGN KEY (funding_id) REFERENCES funding(funding_id)
*/

// MonthlyCharge is one charge against a funding source for a given month.
// ChargeDate is always the first of the month.
type MonthlyCharge struct {
	ChargeID    uuid.UUID       `db:"charge_id"`
	ProjectID   uuid.UUID       `db:"project_id"`
	FundingID   uuid.UUID       `db:"funding_id"`
	Amount      decimal.Decimal `db:"amount"`
	ChargeDate  time.Time       `db:"charge_date"`
	Description string          `db:"description"`
}
