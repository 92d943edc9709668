package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/procat-rse/procatsrv/internal/analytics"
	"github.com/procat-rse/procatsrv/internal/charging"
	"github.com/procat-rse/procatsrv/internal/clockify"
	"github.com/procat-rse/procatsrv/internal/db"
	"github.com/procat-rse/procatsrv/internal/db/postgresql"
	"github.com/procat-rse/procatsrv/internal/notify"
	"github.com/procat-rse/procatsrv/internal/projects"
	"github.com/procat-rse/procatsrv/internal/taskqueue"
	"github.com/procat-rse/procatsrv/internal/types"
	"github.com/rs/zerolog/log"
)

// Job names on the queue.
const (
	JobNotifyLeftThreshold  = "notify_left_threshold"
	JobMonthlyTimeLogged    = "notify_monthly_time_logged"
	JobMonthlyChargesReport = "email_monthly_charges_report"
	JobCheckBudgetStatus    = "check_budget_status"
	JobSyncClockify         = "sync_clockify_time_entries"
)

// Tasks wires the background jobs to their dependencies.
type Tasks struct {
	mailer   notify.Mailer
	clockify *clockify.Client
}

func New(mailer notify.Mailer, client *clockify.Client) *Tasks {
	return &Tasks{mailer: mailer, clockify: client}
}

// Register binds every job handler to its name.
func (t *Tasks) Register(registry *taskqueue.Registry) {
	registry.Register(JobNotifyLeftThreshold, t.notifyLeftThreshold)
	registry.Register(JobMonthlyTimeLogged, t.monthlyTimeLogged)
	registry.Register(JobMonthlyChargesReport, t.monthlyChargesReport)
	registry.Register(JobCheckBudgetStatus, t.checkBudgetStatus)
	registry.Register(JobSyncClockify, t.syncClockify)
}

// Schedule sets up the periodic cadence: hourly Clockify sync, weekly
// budget checks, and the monthly summary and charges report on the 1st.
func (t *Tasks) Schedule(scheduler *taskqueue.Scheduler) error {
	schedules := []struct {
		spec    string
		name    string
		payload any
	}{
		{"15 * * * *", JobSyncClockify, SyncClockifyPayload{Days: 14}},
		{"0 7 * * 1", JobCheckBudgetStatus, nil},
		{"0 8 1 * *", JobMonthlyTimeLogged, nil},
		{"0 9 1 * *", JobMonthlyChargesReport, nil},
	}
	for _, s := range schedules {
		if err := scheduler.Add(s.spec, s.name, s.payload); err != nil {
			return ErrTasks.Err(err)
		}
	}
	return nil
}

func timeEntriesForUser(userID uuid.UUID, from, to time.Time) postgresql.TimeEntryFilter {
	return postgresql.TimeEntryFilter{UserID: userID, From: from, To: to}
}

// ThresholdPayload asks for a project status notification to the lead.
type ThresholdPayload struct {
	Email         string `json:"email"`
	Lead          string `json:"lead"`
	ProjectName   string `json:"project_name"`
	ThresholdType string `json:"threshold_type"`
	Threshold     int    `json:"threshold"`
	Value         int    `json:"value"`
}

func (t *Tasks) notifyLeftThreshold(ctx context.Context, payload []byte) error {
	var p ThresholdPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return ErrTasks.Err(err)
	}
	message, err := ThresholdMessage(p.Lead, p.ProjectName, p.ThresholdType, p.Threshold, p.Value)
	if err != nil {
		return err
	}
	return t.mailer.Send(ctx, p.Email, ThresholdSubject(p.ProjectName), message)
}

// monthlyTimeLogged mails every user a summary of the days they logged
// last month. Users with no entries get no mail.
func (t *Tasks) monthlyTimeLogged(ctx context.Context, _ []byte) error {
	lastStart, lastName, currentStart, currentName := analytics.CurrentAndLastMonth(time.Now())

	users, err := db.DB(ctx).ListUsers(ctx)
	if err != nil {
		return ErrTasks.Err(err)
	}

	projectNames := make(map[uuid.UUID]string)
	nameOf := func(projectID uuid.UUID) (string, error) {
		if name, ok := projectNames[projectID]; ok {
			return name, nil
		}
		project, err := db.DB(ctx).GetProject(ctx, projectID)
		if err != nil {
			return "", err
		}
		projectNames[projectID] = project.Name
		return project.Name, nil
	}

	for i := range users {
		entries, err := db.DB(ctx).ListTimeEntries(ctx, timeEntriesForUser(users[i].UserID, lastStart, currentStart))
		if err != nil {
			return ErrTasks.Err(err)
		}
		if len(entries) == 0 {
			continue
		}

		var totalHours float64
		hoursByProject := make(map[string]float64)
		var order []string
		for j := range entries {
			name, err := nameOf(entries[j].ProjectID)
			if err != nil {
				return ErrTasks.Err(err)
			}
			if _, seen := hoursByProject[name]; !seen {
				order = append(order, name)
			}
			hours := entries[j].Hours()
			hoursByProject[name] += hours
			totalHours += hours
		}

		lines := make([]string, len(order))
		for j, name := range order {
			lines[j] = LoggedDaysLine(name, hoursByProject[name])
		}
		percentage := TimeLoggedPercentage(totalHours, lastStart, currentStart)

		message := MonthlySummaryMessage(users[i].FullName, lastName, currentName, lines, percentage)
		if err := t.mailer.Send(ctx, users[i].Email, MonthlySummarySubject(lastName), message); err != nil {
			return err
		}
	}
	return nil
}

// monthlyChargesReport regenerates last month's charges, archives the
// journal CSV, mails it to the admin, and queues project status
// notifications for leads whose projects crossed a threshold.
func (t *Tasks) monthlyChargesReport(ctx context.Context, _ []byte) error {
	now := time.Now()
	lastStart, lastName, _, _ := analytics.CurrentAndLastMonth(now)

	content, err := charging.GenerateReport(ctx, lastStart, now)
	if err != nil {
		return err
	}
	if err := charging.ArchiveReport(ctx, lastStart, content); err != nil {
		return err
	}

	admin, err := db.DB(ctx).GetAdminUser(ctx)
	if err != nil {
		return ErrTasks.Err(err)
	}
	err = t.mailer.Send(ctx, admin.Email,
		ChargesReportSubject(lastName),
		ChargesReportMessage(admin.FullName, lastName),
		notify.Attachment{
			Filename:    ChargesReportFilename(lastStart),
			ContentType: "text/csv",
			Content:     content,
		})
	if err != nil {
		return err
	}

	return t.queueThresholdNotifications(ctx, now)
}

// Notification thresholds, most severe last.
var thresholds = []int{50, 25, 10}

func crossedThreshold(percentLeft float64) (int, bool) {
	crossed := 0
	for _, threshold := range thresholds {
		if percentLeft <= float64(threshold) {
			crossed = threshold
		}
	}
	return crossed, crossed > 0
}

// queueThresholdNotifications enqueues a status notification per active
// project whose effort or time left has dropped below a threshold.
func (t *Tasks) queueThresholdNotifications(ctx context.Context, now time.Time) error {
	active, err := db.DB(ctx).ListProjectsByStatus(ctx, []types.ProjectStatus{types.ProjectActive})
	if err != nil {
		return ErrTasks.Err(err)
	}

	for i := range active {
		project := &active[i]
		if project.LeadID == nil {
			continue
		}
		lead, err := db.DB(ctx).GetUser(ctx, *project.LeadID)
		if err != nil {
			return ErrTasks.Err(err)
		}
		report, err := projects.GetStatusReport(ctx, project.ProjectID, now)
		if err != nil {
			return ErrTasks.Err(err)
		}

		var payloads []ThresholdPayload
		if report.DaysLeft != nil {
			if threshold, ok := crossedThreshold(report.DaysLeft.PercentLeft); ok {
				payloads = append(payloads, ThresholdPayload{
					Email:         lead.Email,
					Lead:          lead.FullName,
					ProjectName:   project.Name,
					ThresholdType: ThresholdEffort,
					Threshold:     threshold,
					Value:         int(report.DaysLeft.DaysLeft),
				})
			}
		}
		if report.Deadline != nil {
			if threshold, ok := crossedThreshold(report.Deadline.PercentLeft); ok {
				payloads = append(payloads, ThresholdPayload{
					Email:         lead.Email,
					Lead:          lead.FullName,
					ProjectName:   project.Name,
					ThresholdType: ThresholdWeeks,
					Threshold:     threshold,
					Value:         report.Deadline.WeeksLeft,
				})
			}
		}
		for _, payload := range payloads {
			if _, err := taskqueue.Enqueue(ctx, JobNotifyLeftThreshold, payload, now); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkBudgetStatus mails the admin about funding that ran out before
// expiring, funding that expired with budget left, and projects whose
// last-month charges exceed their active budget.
func (t *Tasks) checkBudgetStatus(ctx context.Context, _ []byte) error {
	now := time.Now()
	status, err := projects.GetBudgetStatus(ctx, now)
	if err != nil {
		return ErrTasks.Err(err)
	}
	lastStart, _, currentStart, _ := analytics.CurrentAndLastMonth(now)
	over, err := projects.FindOverBudgetProjects(ctx, lastStart, currentStart)
	if err != nil {
		return ErrTasks.Err(err)
	}

	if len(status.RanOutNotExpired) == 0 && len(status.ExpiredBudgetLeft) == 0 && len(over) == 0 {
		log.Ctx(ctx).Info().Msg("budget status clean, no alerts")
		return nil
	}

	var b strings.Builder
	b.WriteString("\nDear admin,\n\nThe following funding needs attention:\n")
	for _, balance := range status.RanOutNotExpired {
		fmt.Fprintf(&b, "\n- Funding %s has run out of budget before its expiry date.", balance.Funding.FundingBody)
	}
	for _, balance := range status.ExpiredBudgetLeft {
		fmt.Fprintf(&b, "\n- Funding %s has expired with %s left in the budget.",
			balance.Funding.FundingBody, balance.FundingLeft().StringFixed(2))
	}
	for _, project := range over {
		fmt.Fprintf(&b, "\n- Project %s has charges of %s against an active budget of %s.",
			project.Project.Name, project.TotalCharges.StringFixed(2), project.ActiveBudget.StringFixed(2))
	}
	b.WriteString("\n\nBest regards,\nProCAT\n")

	admin, err := db.DB(ctx).GetAdminUser(ctx)
	if err != nil {
		return ErrTasks.Err(err)
	}
	return t.mailer.Send(ctx, admin.Email, "[Budget Status] Funding alerts", b.String())
}

// SyncClockifyPayload bounds the sync window.
type SyncClockifyPayload struct {
	Days int `json:"days"`
}

func (t *Tasks) syncClockify(ctx context.Context, payload []byte) error {
	p := SyncClockifyPayload{Days: 14}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return ErrTasks.Err(err)
		}
	}
	if p.Days <= 0 {
		p.Days = 14
	}
	now := time.Now()
	_, err := clockify.SyncTimeEntries(ctx, t.clockify, now.AddDate(0, 0, -p.Days), now)
	return err
}
