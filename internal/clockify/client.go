package clockify

import (
	"context"
	"fmt"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
	"github.com/procat-rse/procatsrv/internal/apperrors"
	"github.com/procat-rse/procatsrv/internal/config"
)

var (
	ErrClockify      apperrors.Error = apperrors.New("error talking to clockify")
	ErrNotConfigured apperrors.Error = ErrClockify.New("clockify api key or workspace not configured")
)

// TimeInterval is the logged span of a Clockify entry. Duration is
// seconds.
type TimeInterval struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"`
}

// ReportEntry is one time entry of the detailed report.
type ReportEntry struct {
	ID           string       `json:"_id"`
	Description  string       `json:"description"`
	UserID       string       `json:"userId"`
	UserEmail    string       `json:"userEmail"`
	ProjectID    string       `json:"projectId"`
	ProjectName  string       `json:"projectName"`
	Billable     bool         `json:"billable"`
	TimeInterval TimeInterval `json:"timeInterval"`
}

// DetailedReport is the reports API response, trimmed to what the sync
// needs.
type DetailedReport struct {
	TimeEntries []ReportEntry `json:"timeentries"`
}

type detailedFilter struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

type reportRequest struct {
	DateRangeStart string         `json:"dateRangeStart"`
	DateRangeEnd   string         `json:"dateRangeEnd"`
	DetailedFilter detailedFilter `json:"detailedFilter"`
}

// Client calls the Clockify reports API.
type Client struct {
	baseURL     string
	apiKey      string
	workspaceID string
}

// NewClient builds a client from the process configuration.
func NewClient() *Client {
	cfg := config.Config().Clockify
	return &Client{
		baseURL:     cfg.ReportsURL,
		apiKey:      cfg.APIKey,
		workspaceID: cfg.WorkspaceID,
	}
}

// NewClientWith builds a client against an explicit endpoint.
func NewClientWith(baseURL, apiKey, workspaceID string) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, workspaceID: workspaceID}
}

const clockifyTimeFormat = "2006-01-02T15:04:05.000Z"

// DetailedReport fetches one page of the workspace's detailed time entry
// report for [start, end).
func (c *Client) DetailedReport(ctx context.Context, start, end time.Time, page, pageSize int) (*DetailedReport, error) {
	if c.apiKey == "" || c.workspaceID == "" {
		return nil, ErrNotConfigured
	}

	req := reportRequest{
		DateRangeStart: start.UTC().Format(clockifyTimeFormat),
		DateRangeEnd:   end.UTC().Format(clockifyTimeFormat),
		DetailedFilter: detailedFilter{Page: page, PageSize: pageSize},
	}

	httpClient := fastshot.NewClient(c.baseURL).
		Config().SetTimeout(time.Minute).
		Header().Add("Content-Type", "application/json").
		Build()

	resp, err := httpClient.
		POST(fmt.Sprintf("/workspaces/%s/reports/detailed", c.workspaceID)).
		Context().Set(ctx).
		Header().Add("X-Api-Key", c.apiKey).
		Retry().SetExponentialBackoff(30*time.Second, 4, 2.0).
		Body().AsJSON(req).
		Send()
	if err != nil {
		return nil, ErrClockify.Err(err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, err := resp.Body().AsString()
		if err != nil {
			return nil, ErrClockify.Err(err)
		}
		return nil, ErrClockify.Msg(fmt.Sprintf("clockify returned %d: %s", resp.Status().Code(), msg))
	}

	var report DetailedReport
	if err := resp.Body().AsJSON(&report); err != nil {
		return nil, ErrClockify.Err(err)
	}
	return &report, nil
}
