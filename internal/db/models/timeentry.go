package models

import (
	"time"

	"github.com/google/uuid"
)

/*
     Column      |           Type           | Collation | Nullable |      Default
-----------------+--------------------------+-----------+----------+--------------------
 time_entry_id   | uuid                     |           | not null | uuid_generate_v4()
 user_id         | uuid                     |           | not null |
 project_id      | uuid                     |           | not null |
 start_time      | timestamp with time zone |           | not null |
 end_time        | timestamp with time zone |           | not null |
 clockify_id     | character varying(64)    |           |          |
 monthly_charge  | uuid                     |           |          |
Indexes:
    "time_entries_pkey" PRIMARY KEY, btree (time_entry_id)
    "time_entries_clockify_id_key" UNIQUE CONSTRAINT, btree (clockify_id)
Foreign-key constraints:
    "time_entries_user_id_fkey" FOREIGN KEY (user_id) REFERENCES users(user_id)
    "time_entries_project_id_fkey" FOREIGN KEY (project_id) REFERENCES projects(project_id)
    "time_entries_monthly_charge_fkey" FOREIGN KEY (monthly_charge) REFERENCES monthly_charges(charge_id)
*/

// TimeEntry is a block of logged work. Entries synced from Clockify carry
// the Clockify entry ID so the sync can upsert. MonthlyChargeID is set
// once the entry has been billed.
type TimeEntry struct {
	TimeEntryID     uuid.UUID  `db:"time_entry_id"`
	UserID          uuid.UUID  `db:"user_id"`
	ProjectID       uuid.UUID  `db:"project_id"`
	StartTime       time.Time  `db:"start_time"`
	EndTime         time.Time  `db:"end_time"`
	ClockifyID      string     `db:"clockify_id"`
	MonthlyChargeID *uuid.UUID `db:"monthly_charge"`
}

// Hours is the logged duration in hours.
func (t *TimeEntry) Hours() float64 {
	return t.EndTime.Sub(t.StartTime).Hours()
}
