package apis

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/httpx"
	"github.com/procat-rse/procatsrv/pkg/api"
)

const maxRequestBody = 1 << 20

var validate = validator.New()

// readRequest reads, parses and validates a JSON request body into v.
func readRequest(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return httpx.ErrUnableToReadRequest()
	}
	if err := json.Unmarshal(body, v); err != nil {
		return httpx.ErrInvalidRequest()
	}
	if err := validate.Struct(v); err != nil {
		return &httpx.Error{StatusCode: http.StatusBadRequest, Description: err.Error()}
	}
	return nil
}

// pagination reads limit/offset query parameters. Zero limit means no
// limit.
func pagination(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func uuidFromString(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, httpx.ErrInvalidRequest()
	}
	return id, nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, httpx.ErrInvalidRequest()
	}
	return id, nil
}

// monthParam reads month and year query parameters into the first of
// that month. Defaults to last month when both are absent.
func monthParam(r *http.Request, now time.Time) (time.Time, error) {
	monthStr := r.URL.Query().Get("month")
	yearStr := r.URL.Query().Get("year")
	if monthStr == "" && yearStr == "" {
		current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return current.AddDate(0, -1, 0), nil
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, httpx.ErrInvalidRequest()
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 3000 {
		return time.Time{}, httpx.ErrInvalidRequest()
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// dateParam reads a "2006-01-02" query parameter, or returns fallback
// when absent.
func dateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	t, err := time.Parse(api.DateFormat, v)
	if err != nil {
		return time.Time{}, httpx.ErrInvalidRequest()
	}
	return t, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(api.DateFormat, *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(api.DateFormat)
	return &s
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

func formatOptionalUUID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
