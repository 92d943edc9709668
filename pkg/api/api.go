// Package api holds the request and response shapes of the procatsrv
// HTTP API. Dates travel as "2006-01-02" strings; money travels as
// decimal strings.
package api

import (
	"encoding/json"
	"time"
)

const DateFormat = "2006-01-02"

// ProjectRequest creates or updates a project.
type ProjectRequest struct {
	Name         string  `json:"name" validate:"required,max=256"`
	Nature       string  `json:"nature" validate:"omitempty,oneof=Support Standard"`
	PI           string  `json:"pi" validate:"max=256"`
	DepartmentID string  `json:"department_id" validate:"required,uuid"`
	StartDate    *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate      *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	LeadID       *string `json:"lead_id" validate:"omitempty,uuid"`
	Status       string  `json:"status" validate:"omitempty,oneof=Draft 'Not started' Active Completed"`
	Charging     string  `json:"charging" validate:"omitempty,oneof=Actual Pro-rata Manual"`
}

// ProjectResponse is one project.
type ProjectResponse struct {
	ProjectID    string  `json:"project_id"`
	Name         string  `json:"name"`
	Nature       string  `json:"nature"`
	PI           string  `json:"pi"`
	DepartmentID string  `json:"department_id"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	LeadID       *string `json:"lead_id,omitempty"`
	Status       string  `json:"status"`
	Charging     string  `json:"charging"`
}

// FundingRequest creates or updates a funding source.
type FundingRequest struct {
	ProjectID    string  `json:"project_id" validate:"required,uuid"`
	Source       string  `json:"source" validate:"required,oneof=Internal External"`
	FundingBody  string  `json:"funding_body" validate:"max=256"`
	ProjectCode  string  `json:"project_code" validate:"max=64"`
	CostCentre   string  `json:"cost_centre" validate:"max=16"`
	Activity     string  `json:"activity" validate:"max=16"`
	AnalysisCode *int    `json:"analysis_code"`
	ExpiryDate   *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	Budget       string  `json:"budget" validate:"required"`
	DailyRate    string  `json:"daily_rate"`
}

// FundingResponse is one funding source with its derived effort.
type FundingResponse struct {
	FundingID    string  `json:"funding_id"`
	ProjectID    string  `json:"project_id"`
	Source       string  `json:"source"`
	FundingBody  string  `json:"funding_body,omitempty"`
	ProjectCode  string  `json:"project_code,omitempty"`
	CostCentre   string  `json:"cost_centre,omitempty"`
	Activity     string  `json:"activity,omitempty"`
	AnalysisCode *int    `json:"analysis_code,omitempty"`
	ExpiryDate   *string `json:"expiry_date,omitempty"`
	Budget       string  `json:"budget"`
	DailyRate    string  `json:"daily_rate"`
	Effort       int64   `json:"effort"`
}

// CapacityRequest records a capacity change for a user.
type CapacityRequest struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	Value     string `json:"value" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// CapacityResponse is one capacity entry.
type CapacityResponse struct {
	CapacityID string `json:"capacity_id"`
	UserID     string `json:"user_id"`
	Value      string `json:"value"`
	StartDate  string `json:"start_date"`
}

// DepartmentRequest creates a department.
type DepartmentRequest struct {
	Name    string `json:"name" validate:"required,max=128"`
	Faculty string `json:"faculty" validate:"required"`
}

// DepartmentResponse is one department.
type DepartmentResponse struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Faculty      string `json:"faculty"`
}

// AnalysisCodeRequest creates an analysis code.
type AnalysisCodeRequest struct {
	Code        int    `json:"code" validate:"required"`
	Description string `json:"description" validate:"required,max=256"`
	Notes       string `json:"notes"`
}

// AnalysisCodeResponse is one analysis code.
type AnalysisCodeResponse struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

// TimeEntryRequest records logged work.
type TimeEntryRequest struct {
	UserID    string    `json:"user_id" validate:"required,uuid"`
	ProjectID string    `json:"project_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
}

// TimeEntryResponse is one time entry.
type TimeEntryResponse struct {
	TimeEntryID     string    `json:"time_entry_id"`
	UserID          string    `json:"user_id"`
	ProjectID       string    `json:"project_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	ClockifyID      string    `json:"clockify_id,omitempty"`
	MonthlyChargeID *string   `json:"monthly_charge_id,omitempty"`
	Hours           float64   `json:"hours"`
}

// JobRequest enqueues a background job by name.
type JobRequest struct {
	Name    string          `json:"name" validate:"required,max=128"`
	Payload json.RawMessage `json:"payload"`
	RunAt   *time.Time      `json:"run_at"`
}

// JobResponse is the queue's view of a job.
type JobResponse struct {
	JobID       string          `json:"job_id"`
	Name        string          `json:"name"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      string          `json:"status"`
	RunAt       time.Time       `json:"run_at"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	LastError   string          `json:"last_error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
