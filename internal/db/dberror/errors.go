package dberror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgconn"
	"github.com/procat-rse/procatsrv/internal/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("db error").SetStatusCode(http.StatusInternalServerError)
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound      apperrors.Error = ErrDatabase.New("not found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrInUse         apperrors.Error = ErrDatabase.New("referenced by other records").SetStatusCode(http.StatusConflict)
)

// Postgres error codes we map to sentinel errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Map converts a raw pgx error to the matching sentinel. Unique violations
// become ErrAlreadyExists, foreign key violations ErrInUse, everything
// else ErrDatabase.
func Map(err error) apperrors.Error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrAlreadyExists.Err(err)
		case pgForeignKeyViolation:
			return ErrInUse.Err(err)
		}
	}
	return ErrDatabase.Err(err)
}
