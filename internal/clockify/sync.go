package clockify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

const syncPageSize = 200

// SyncResult summarises one sync run.
type SyncResult struct {
	Synced  int `json:"synced"`
	Skipped int `json:"skipped"`
}

// SyncTimeEntries pulls the detailed report for [start, end) and upserts
// the entries as local time entries, keyed by Clockify ID so re-running a
// period is idempotent. Entries are matched to users by email and to
// projects by name; unmatched entries are skipped, not failed, since the
// workspace tracks more than charged projects.
func SyncTimeEntries(ctx context.Context, client *Client, start, end time.Time) (*SyncResult, error) {
	users, err := db.DB(ctx).ListUsers(ctx)
	if err != nil {
		return nil, ErrClockify.Err(err)
	}
	usersByEmail := make(map[string]*models.User, len(users))
	for i := range users {
		usersByEmail[strings.ToLower(users[i].Email)] = &users[i]
	}

	projectsByName := make(map[string]*models.Project)
	result := &SyncResult{}

	for page := 1; ; page++ {
		report, err := client.DetailedReport(ctx, start, end, page, syncPageSize)
		if err != nil {
			return nil, err
		}
		for i := range report.TimeEntries {
			entry := &report.TimeEntries[i]

			user, ok := usersByEmail[strings.ToLower(entry.UserEmail)]
			if !ok {
				log.Ctx(ctx).Debug().Str("email", entry.UserEmail).Msg("skipping entry for unknown user")
				result.Skipped++
				continue
			}

			project, ok := projectsByName[entry.ProjectName]
			if !ok {
				project, err = db.DB(ctx).GetProjectByName(ctx, entry.ProjectName)
				if err != nil {
					if !errors.Is(err, dberror.ErrNotFound) {
						return nil, ErrClockify.Err(err)
					}
					log.Ctx(ctx).Debug().Str("project", entry.ProjectName).Msg("skipping entry for unknown project")
					result.Skipped++
					continue
				}
				projectsByName[entry.ProjectName] = project
			}

			timeEntry := &models.TimeEntry{
				UserID:     user.UserID,
				ProjectID:  project.ProjectID,
				StartTime:  entry.TimeInterval.Start,
				EndTime:    entry.TimeInterval.End,
				ClockifyID: entry.ID,
			}
			if err := db.DB(ctx).UpsertTimeEntry(ctx, timeEntry); err != nil {
				return nil, ErrClockify.Err(err)
			}
			result.Synced++
		}
		if len(report.TimeEntries) < syncPageSize {
			break
		}
	}

	log.Ctx(ctx).Info().
		Int("synced", result.Synced).
		Int("skipped", result.Skipped).
		Time("from", start).
		Time("to", end).
		Msg("clockify sync finished")
	return result, nil
}
