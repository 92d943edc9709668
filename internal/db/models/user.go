package models

import (
	"github.com/google/uuid"
)

/*
  Column   |          Type           | Collation | Nullable |      Default
-----------+-------------------------+-----------+----------+--------------------
 user_id   | uuid                    |           | not null | uuid_generate_v4()
 username  | character varying(128)  |           | not null |
 email     | character varying(256)  |           | not null |
 full_name | character varying(256)  |           |          |
 is_admin  | boolean                 |           | not null | false
Indexes:
    "users_pkey" PRIMARY KEY, btree (user_id)
    "users_username_key" UNIQUE CONSTRAINT, btree (username)
*/

// User is a team member. Accounts are provisioned externally (SSO); this
// table only mirrors what charging and notifications need.
type User struct {
	UserID   uuid.UUID `db:"user_id"`
	Username string    `db:"username"`
	Email    string    `db:"email"`
	FullName string    `db:"full_name"`
	IsAdmin  bool      `db:"is_admin"`
}
