package models

/*
   Column    |          Type           | Collation | Nullable | Default
-------------+-------------------------+-----------+----------+---------
 code        | integer                 |           | not null |
 description | character varying(256)  |           | not null |
 notes       | text                    |           | not null |
Indexes:
    "analysis_codes_pkey" PRIMARY KEY, btree (code)
    "analysis_codes_description_key" UNIQUE CONSTRAINT, btree (description)
*/

// AnalysisCode is the finance analysis code charges are booked against.
type AnalysisCode struct {
	Code        int    `db:"code"`
	Description string `db:"description"`
	Notes       string `db:"notes"`
}
