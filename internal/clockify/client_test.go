package clockify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailedReport(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotRequest reportRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"timeentries": [
				{
					"_id": "entry-1",
					"description": "data wrangling",
					"userEmail": "ada@example.ac.uk",
					"projectName": "Widget Analysis",
					"billable": true,
					"timeInterval": {
						"start": "2025-04-07T09:00:00Z",
						"end": "2025-04-07T12:30:00Z",
						"duration": 12600
					}
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewClientWith(server.URL, "secret", "workspace-1")
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	report, err := client.DetailedReport(context.Background(), start, end, 1, 200)
	require.NoError(t, err)

	assert.Equal(t, "/workspaces/workspace-1/reports/detailed", gotPath)
	assert.Equal(t, "secret", gotAPIKey)
	assert.Equal(t, "2025-04-01T00:00:00.000Z", gotRequest.DateRangeStart)
	assert.Equal(t, "2025-05-01T00:00:00.000Z", gotRequest.DateRangeEnd)
	assert.Equal(t, 1, gotRequest.DetailedFilter.Page)
	assert.Equal(t, 200, gotRequest.DetailedFilter.PageSize)

	require.Len(t, report.TimeEntries, 1)
	entry := report.TimeEntries[0]
	assert.Equal(t, "entry-1", entry.ID)
	assert.Equal(t, "ada@example.ac.uk", entry.UserEmail)
	assert.Equal(t, "Widget Analysis", entry.ProjectName)
	assert.Equal(t, 12600, entry.TimeInterval.Duration)
	assert.Equal(t, 3.5, entry.TimeInterval.End.Sub(entry.TimeInterval.Start).Hours())
}

func TestDetailedReportNotConfigured(t *testing.T) {
	client := NewClientWith("http://localhost", "", "")
	_, err := client.DetailedReport(context.Background(), time.Now(), time.Now(), 1, 200)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
