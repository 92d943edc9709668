package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

/*
   Column    |          Type           | Collation | Nullable |      Default
-------------+-------------------------+-----------+----------+--------------------
 capacity_id | uuid                    |           | not null | uuid_generate_v4()
 user_id     | uuid                    |           | not null |
 value       | numeric(3,2)            |           | not null | 0.70
 start_date  | date                    |           | not null |
Indexes:
    "capacities_pkey" PRIMARY KEY, btree (capacity_id)
    "capacities_user_id_start_date_key" UNIQUE CONSTRAINT, btree (user_id, start_date)
Check constraints:
    "capacities_value_check" CHECK (value >= 0 AND value <= 1)
Foreign-key constraints:
    "capacities_user_id_fkey" FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
*/

// Capacity is the fraction of 1 FTE a team member devotes to project work
// from a given date. An entry applies until the user's next entry.
type Capacity struct {
	CapacityID uuid.UUID       `db:"capacity_id"`
	UserID     uuid.UUID       `db:"user_id"`
	Value      decimal.Decimal `db:"value"`
	StartDate  time.Time       `db:"start_date"`
}

// CapacityWindow is a capacity entry with its effective end date resolved:
// the start of the user's next entry, or the end of the queried period.
type CapacityWindow struct {
	Capacity
	EndDate time.Time `db:"end_date"`
}
