package models

import (
	"time"

	"github.com/google/uuid"
)

/*
   Column     |           Type           | Collation | Nullable |      Default
--------------+--------------------------+-----------+----------+--------------------
 report_id    | uuid                     |           | not null | uuid_generate_v4()
 report_month | date                     |           | not null |
 content      | bytea                    |           | not null |
 generated_at | timestamp with time zone |           | not null | now()
Indexes:
    "report_archive_pkey" PRIMARY KEY, btree (report_id)
*/

// ReportArchive is a generated charges report kept for audit. Content is
// the snappy-compressed CSV.
type ReportArchive struct {
	ReportID    uuid.UUID `db:"report_id"`
	ReportMonth time.Time `db:"report_month"`
	Content     []byte    `db:"content"`
	GeneratedAt time.Time `db:"generated_at"`
}
