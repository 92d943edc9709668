package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/shopspring/decimal"
)

/*
    Column    |          Type           | Collation | Nullable |      Default
--------------+-------------------------+-----------+----------+--------------------
 funding_id   | uuid                    |           | not null | uuid_generate_v4()
 project_id   | uuid                    |           | not null |
 source       | character varying(16)   |           | not null |
 funding_body | character varying(256)  |           |          |
 project_code | character varying(64)   |           |          |
 cost_centre  | character varying(16)   |           |          |
 activity     | character varying(16)   |           |          |
 analysis_code| integer                 |           |          |
 expiry_date  | date                    |           |          |
 budget       | numeric(12,2)           |           | not null |
 daily_rate   | numeric(12,2)           |           | not null | 389.00
Indexes:
    "funding_pkey" PRIMARY KEY, btree (funding_id)
Foreign-key constraints:
    "funding_project_id_fkey" FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
    "funding_analysis_code_fkey" FOREIGN KEY (analysis_code) REFERENCES analysis_codes(code)
*/

// DefaultDailyRate is the standard daily rate charged for RSE work.
var DefaultDailyRate = decimal.New(38900, -2)

// Funding is one funding source backing a project. Body, codes and expiry
// are optional only for Internal sources.
type Funding struct {
	FundingID    uuid.UUID           `db:"funding_id"`
	ProjectID    uuid.UUID           `db:"project_id"`
	Source       types.FundingSource `db:"source"`
	FundingBody  string              `db:"funding_body"`
	ProjectCode  string              `db:"project_code"`
	CostCentre   string              `db:"cost_centre"`
	Activity     string              `db:"activity"`
	AnalysisCode *int                `db:"analysis_code"`
	ExpiryDate   *time.Time          `db:"expiry_date"`
	Budget       decimal.Decimal     `db:"budget"`
	DailyRate    decimal.Decimal     `db:"daily_rate"`
}

// Effort is the days of effort the budget pays for at the daily rate.
func (f *Funding) Effort() int64 {
	if f.DailyRate.IsZero() {
		return 0
	}
	return f.Budget.Div(f.DailyRate).Round(0).IntPart()
}
